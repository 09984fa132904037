// Package simulator plays bot-only hands on many tables at once.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config describes a simulation run.
type Config struct {
	Tables     int
	Hands      int // per table
	Seats      int
	Stack      int
	SmallBlind int
	BigBlind   int
	Seed       int64
	// Strategies are assigned to seats in turn. Empty means a mix of every
	// built-in strategy.
	Strategies []string
	Logger     *log.Logger
}

func (c *Config) defaults() {
	if c.Tables == 0 {
		c.Tables = 1
	}
	if c.Seats == 0 {
		c.Seats = 6
	}
	if c.SmallBlind == 0 {
		c.SmallBlind = 1
	}
	if c.BigBlind == 0 {
		c.BigBlind = 2 * c.SmallBlind
	}
	if c.Stack == 0 {
		c.Stack = 100 * c.BigBlind
	}
	if len(c.Strategies) == 0 {
		c.Strategies = bot.Strategies
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
}

// Validate checks the configuration after defaults are applied.
func (c Config) Validate() error {
	if c.Tables < 0 || c.Hands < 0 {
		return errors.New("tables and hands cannot be negative")
	}
	if c.Stack <= 0 {
		return errors.New("stack must be positive")
	}
	for _, s := range c.Strategies {
		if !bot.Valid(s) {
			return fmt.Errorf("invalid strategy %s", s)
		}
	}
	return game.Config{Seats: c.Seats, SmallBlind: c.SmallBlind, BigBlind: c.BigBlind}.Validate()
}

// TableReport is the outcome of one table.
type TableReport struct {
	Table      int
	Hands      int
	Showdowns  int
	PotTotal   int
	BiggestPot int
	Chips      int
	Stacks     []int
}

// Report aggregates every table of a run.
type Report struct {
	Tables     []TableReport
	Hands      int
	Showdowns  int
	PotTotal   int
	BiggestPot int
	// ByStrategy holds results per seat strategy, in big blinds.
	ByStrategy map[string]*statistics.Statistics
}

// Strategies returns the strategy names in the report, sorted.
func (r *Report) Strategies() []string {
	return slices.Sorted(maps.Keys(r.ByStrategy))
}

// Run plays cfg.Hands hands on each of cfg.Tables tables. Each table is
// owned by one goroutine. The first error cancels the remaining tables.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	cfg.defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		Tables:     make([]TableReport, cfg.Tables),
		ByStrategy: map[string]*statistics.Statistics{},
	}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for i := range cfg.Tables {
		g.Go(func() error {
			tr, stats, err := runTable(ctx, cfg, i)
			if err != nil {
				return fmt.Errorf("table %d: %w", i, err)
			}
			mu.Lock()
			defer mu.Unlock()
			report.Tables[i] = *tr
			for name, s := range stats {
				if report.ByStrategy[name] == nil {
					report.ByStrategy[name] = &statistics.Statistics{}
				}
				report.ByStrategy[name].Merge(s)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, tr := range report.Tables {
		report.Hands += tr.Hands
		report.Showdowns += tr.Showdowns
		report.PotTotal += tr.PotTotal
		report.BiggestPot = max(report.BiggestPot, tr.BiggestPot)
	}
	return report, nil
}

func runTable(ctx context.Context, cfg Config, index int) (*TableReport, map[string]*statistics.Statistics, error) {
	logger := cfg.Logger.With("table", index)
	table, err := game.NewTable(
		game.Config{Seats: cfg.Seats, SmallBlind: cfg.SmallBlind, BigBlind: cfg.BigBlind},
		game.WithRNG(randutil.Stream(cfg.Seed, 2*index)),
		game.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}

	botRNG := randutil.Stream(cfg.Seed, 2*index+1)
	agents := make(map[int]game.Agent, cfg.Seats)
	strategies := make(map[int]string, cfg.Seats)
	for seat := range cfg.Seats {
		name := cfg.Strategies[seat%len(cfg.Strategies)]
		agent, err := bot.New(name, botRNG, logger)
		if err != nil {
			return nil, nil, err
		}
		player := game.Player{ID: fmt.Sprintf("t%d-s%d", index, seat), Name: fmt.Sprintf("%s-%d", name, seat)}
		if err := table.Sit(seat, player, cfg.Stack); err != nil {
			return nil, nil, err
		}
		agents[seat] = agent
		strategies[seat] = name
	}

	engine := game.NewEngine(table, agents)
	tr := &TableReport{Table: index}
	stats := map[string]*statistics.Statistics{}
	bb := float64(cfg.BigBlind)

	for range cfg.Hands {
		res, err := engine.PlayHand(ctx)
		if errors.Is(err, game.ErrInsufficientPlayers) {
			logger.Debug("Table finished early", "hands", tr.Hands)
			break
		}
		if err != nil {
			return nil, nil, err
		}

		tr.Hands++
		tr.PotTotal += res.Pot
		tr.BiggestPot = max(tr.BiggestPot, res.Pot)
		if res.Showdown {
			tr.Showdowns++
		}

		seats := table.Seats()
		for seat := range res.StartStacks {
			name := strategies[seat]
			if stats[name] == nil {
				stats[name] = &statistics.Statistics{}
			}
			stats[name].Add(statistics.HandResult{
				NetBB:    float64(res.Net(seat)) / bb,
				Showdown: res.Showdown,
				Position: seats[seat].Position,
				PotBB:    float64(res.Pot) / bb,
			})
		}
	}

	tr.Chips = table.TotalChips()
	for _, s := range table.Seats() {
		tr.Stacks = append(tr.Stacks, s.Stack)
	}
	if want := cfg.Seats * cfg.Stack; tr.Chips != want {
		return nil, nil, fmt.Errorf("%d chips on table, want %d: %w", tr.Chips, want, game.ErrChipConservation)
	}
	return tr, stats, nil
}
