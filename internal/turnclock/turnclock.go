// Package turnclock puts a deadline on agent decisions. The engine itself
// never waits; seats that run out of time check when they can and fold
// otherwise.
package turnclock

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/holdem-engine/internal/game"
)

// Agent wraps another agent with a decision deadline. At most one inner
// decision runs at a time. Decide must not be called concurrently.
type Agent struct {
	inner    game.Agent
	timeout  time.Duration
	clock    quartz.Clock
	logger   *log.Logger
	timeouts atomic.Int64

	// result of a decision that outlived its deadline, nil once drained
	pending chan game.Action
}

// Wrap returns an agent that gives inner at most timeout to decide.
// A non-positive timeout disables the deadline.
func Wrap(inner game.Agent, timeout time.Duration, clock quartz.Clock, logger *log.Logger) *Agent {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Agent{
		inner:   inner,
		timeout: timeout,
		clock:   clock,
		logger:  logger.WithPrefix("turnclock"),
	}
}

// Timeouts counts decisions that ran out of time or were skipped because
// an earlier one was still running.
func (a *Agent) Timeouts() int64 {
	return a.timeouts.Load()
}

func (a *Agent) Decide(v game.View) game.Action {
	if a.timeout <= 0 {
		return a.inner.Decide(v)
	}

	// the inner agent is not safe to run twice at once, so a seat whose
	// last decision is still running gets the default action
	if a.pending != nil {
		select {
		case <-a.pending:
			a.pending = nil
		default:
			a.timeouts.Add(1)
			action := game.CheckOrFold(v.Legal)
			a.logger.Warn("Previous decision still running", "hand", v.HandID, "seat", v.Seat, "action", action)
			return action
		}
	}

	expired := make(chan struct{})
	timer := a.clock.AfterFunc(a.timeout, func() {
		close(expired)
	}, "turnclock", "decide")
	defer timer.Stop()

	decided := make(chan game.Action, 1)
	go func() {
		decided <- a.inner.Decide(v)
	}()

	select {
	case action := <-decided:
		return action
	case <-expired:
		a.timeouts.Add(1)
		a.pending = decided
		action := game.CheckOrFold(v.Legal)
		a.logger.Warn("Decision timeout", "hand", v.HandID, "seat", v.Seat, "timeout", a.timeout, "action", action)
		return action
	}
}
