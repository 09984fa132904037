// Package lobby keeps many tables behind one registry so callers on
// different goroutines can drive them safely. Each table has its own lock,
// so hands on different tables never wait on each other.
package lobby

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

var (
	ErrUnknownTable = errors.New("unknown table")
	ErrTableExists  = errors.New("table already exists")
	ErrNoHand       = errors.New("no hand has been dealt")
)

type entry struct {
	mu    sync.Mutex
	table *game.Table
}

// Lobby is a registry of named tables.
type Lobby struct {
	mu     sync.RWMutex
	tables map[string]*entry
	opts   []game.Option
	logger *log.Logger
}

// New creates an empty lobby. opts are applied to every table it creates.
func New(logger *log.Logger, opts ...game.Option) *Lobby {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Lobby{
		tables: map[string]*entry{},
		opts:   opts,
		logger: logger.WithPrefix("lobby"),
	}
}

// Create registers a new table.
func (l *Lobby) Create(name string, cfg game.Config, opts ...game.Option) error {
	all := append(slices.Clone(l.opts), game.WithLogger(l.logger.With("table", name)))
	t, err := game.NewTable(cfg, append(all, opts...)...)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.tables[name]; ok {
		return fmt.Errorf("%s: %w", name, ErrTableExists)
	}
	l.tables[name] = &entry{table: t}
	l.logger.Info("Created table", "table", name, "seats", cfg.Seats,
		"stakes", fmt.Sprintf("%d/%d", cfg.SmallBlind, cfg.BigBlind))
	return nil
}

// Remove drops a table that has no hand running.
func (l *Lobby) Remove(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.tables[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrUnknownTable)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.table.Status() == game.InProgress {
		return fmt.Errorf("remove %s: %w", name, game.ErrHandInProgress)
	}
	delete(l.tables, name)
	return nil
}

// Names lists the tables, sorted.
func (l *Lobby) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Sorted(maps.Keys(l.tables))
}

// with runs fn while holding the named table's lock.
func (l *Lobby) with(name string, fn func(*game.Table) error) error {
	l.mu.RLock()
	e, ok := l.tables[name]
	l.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrUnknownTable)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.table)
}

func (l *Lobby) Sit(name string, seat int, p game.Player, stack int) error {
	return l.with(name, func(t *game.Table) error {
		return t.Sit(seat, p, stack)
	})
}

// Stand removes a player between hands and returns their stack.
func (l *Lobby) Stand(name string, seat int) (int, error) {
	var stack int
	err := l.with(name, func(t *game.Table) error {
		var err error
		stack, err = t.Stand(seat)
		return err
	})
	return stack, err
}

// StartHand deals a new hand on the table and returns its ID.
func (l *Lobby) StartHand(name string, opts ...game.Option) (string, error) {
	var id string
	err := l.with(name, func(t *game.Table) error {
		h, err := t.StartHand(opts...)
		if err != nil {
			return err
		}
		id = h.ID()
		return nil
	})
	return id, err
}

// Act applies an action for seat in the table's current hand.
func (l *Lobby) Act(name string, seat int, a game.Action) error {
	return l.with(name, func(t *game.Table) error {
		h := t.Hand()
		if h == nil {
			return ErrNoHand
		}
		return h.Act(seat, a)
	})
}

// ForceFold folds seat out of turn, for a player that has gone away.
func (l *Lobby) ForceFold(name string, seat int) error {
	return l.with(name, func(t *game.Table) error {
		h := t.Hand()
		if h == nil {
			return ErrNoHand
		}
		return h.ForceFold(seat)
	})
}

// LegalActions returns what seat may do now; empty when it is not the
// seat's turn or no hand is running.
func (l *Lobby) LegalActions(name string, seat int) ([]game.LegalAction, error) {
	var legal []game.LegalAction
	err := l.with(name, func(t *game.Table) error {
		if h := t.Hand(); h != nil {
			legal = h.LegalActions(seat)
		}
		return nil
	})
	return legal, err
}

// View returns what seat can see of the current hand.
func (l *Lobby) View(name string, seat int) (game.View, error) {
	var v game.View
	err := l.with(name, func(t *game.Table) error {
		h := t.Hand()
		if h == nil {
			return ErrNoHand
		}
		v = h.View(seat)
		return nil
	})
	return v, err
}

// Result returns the last finished hand's result, or nil.
func (l *Lobby) Result(name string) (*game.Result, error) {
	var res *game.Result
	err := l.with(name, func(t *game.Table) error {
		if h := t.Hand(); h != nil {
			res = h.Result()
		}
		return nil
	})
	return res, err
}

// Snapshot is a copy of a table's state at one moment.
type Snapshot struct {
	Name        string
	Config      game.Config
	Status      game.HandStatus
	HandID      string
	Street      game.Street
	ToAct       int
	Dealer      int
	Pot         int
	Board       []poker.Card
	Seats       []game.Seat
	HandsPlayed int
}

// Snapshot copies the table's state. Hole cards are included, so callers
// showing it to players must hide them.
func (l *Lobby) Snapshot(name string) (Snapshot, error) {
	s := Snapshot{Name: name, ToAct: -1}
	err := l.with(name, func(t *game.Table) error {
		s.Config = t.Config()
		s.Status = t.Status()
		s.Dealer = t.Dealer()
		s.Pot = t.Pot()
		s.Board = t.Board()
		s.Seats = t.Seats()
		s.HandsPlayed = t.HandsPlayed()
		if h := t.Hand(); h != nil {
			s.HandID = h.ID()
			s.Street = h.Street()
			s.ToAct = h.ToAct()
		}
		return nil
	})
	return s, err
}
