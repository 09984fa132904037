package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrChipConservation is returned when a hand ends with a different number
// of chips on the table than it started with.
var ErrChipConservation = errors.New("chip conservation violated")

// Engine plays hands at a table, asking each seat's Agent for decisions.
type Engine struct {
	table    *Table
	agents   map[int]Agent
	fallback Agent
	opts     []Option
	logger   *log.Logger
}

// NewEngine creates an engine. Seats without an agent check when they can
// and fold otherwise. Options are passed to every StartHand call.
func NewEngine(t *Table, agents map[int]Agent, opts ...Option) *Engine {
	o := t.opts
	for _, opt := range opts {
		opt(&o)
	}
	fallback := AgentFunc(func(v View) Action {
		return CheckOrFold(v.Legal)
	})
	return &Engine{
		table:    t,
		agents:   agents,
		fallback: fallback,
		opts:     opts,
		logger:   o.logger.WithPrefix("engine"),
	}
}

// Table returns the engine's table.
func (e *Engine) Table() *Table { return e.table }

// SetAgent assigns the agent for a seat.
func (e *Engine) SetAgent(seat int, a Agent) {
	if e.agents == nil {
		e.agents = map[int]Agent{}
	}
	e.agents[seat] = a
}

func (e *Engine) agent(seat int) Agent {
	if a, ok := e.agents[seat]; ok && a != nil {
		return a
	}
	return e.fallback
}

// PlayHand runs one hand to completion. An agent that picks an illegal
// action is logged and made to check or fold. Cancelling ctx stops the
// hand between actions and leaves it in progress.
func (e *Engine) PlayHand(ctx context.Context) (*Result, error) {
	before := e.table.TotalChips()

	h, err := e.table.StartHand(e.opts...)
	if err != nil {
		return nil, err
	}

	for h.Status() == InProgress {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seat := h.ToAct()
		view := h.View(seat)
		action := e.agent(seat).Decide(view)

		err := h.Act(seat, action)
		if errors.Is(err, ErrIllegalAction) {
			fallback := CheckOrFold(view.Legal)
			e.logger.Warn("Illegal action, using fallback",
				"hand", h.ID(), "seat", seat, "action", action, "fallback", fallback, "error", err)
			err = h.Act(seat, fallback)
		}
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", seat, err)
		}
	}

	if after := e.table.TotalChips(); after != before {
		return h.Result(), fmt.Errorf("hand %s: %d chips before, %d after: %w", h.ID(), before, after, ErrChipConservation)
	}
	return h.Result(), nil
}

// PlayHands plays up to n hands, stopping early when fewer than two seats
// have chips. It returns the results of the hands played.
func (e *Engine) PlayHands(ctx context.Context, n int) ([]*Result, error) {
	results := make([]*Result, 0, n)
	for i := 0; i < n; i++ {
		res, err := e.PlayHand(ctx)
		if errors.Is(err, ErrInsufficientPlayers) {
			e.logger.Info("Not enough players to continue", "hands", i)
			break
		}
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
