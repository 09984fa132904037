package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/display"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/phh"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/turnclock"
)

// PlayCmd plays hands at one configured table, optionally with a human in
// one seat.
type PlayCmd struct {
	Config     string `short:"c" default:"table.hcl" help:"Path to HCL configuration file"`
	Table      string `short:"t" help:"Table block to play (default: the first one)"`
	Hands      int    `short:"n" default:"10" help:"Number of hands to play"`
	Human      *int   `help:"Seat index to play yourself"`
	Name       string `default:"you" help:"Your name when playing a seat"`
	HistoryDir string `help:"Write one PHH file per hand to this directory (overrides config)"`
	Seed       *int64 `help:"Deterministic RNG seed (overrides config)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if c.HistoryDir != "" {
		cfg.HistoryDir = c.HistoryDir
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	tc := &cfg.Tables[0]
	if c.Table != "" {
		if tc = cfg.Table(c.Table); tc == nil {
			return fmt.Errorf("no table %q in %s", c.Table, c.Config)
		}
	}

	seed := tc.Seed
	if c.Seed != nil {
		seed = *c.Seed
	}
	var rng *rand.Rand
	if seed == 0 {
		rng, seed = randutil.FromClock()
		logger.Info("Using random seed", "seed", seed)
	} else {
		rng = randutil.New(seed)
		logger.Info("Using deterministic seed", "seed", seed)
	}

	st := display.NewStyles(display.NewRenderer(os.Stdout, !g.NoColor))
	human := -1
	if c.Human != nil {
		human = *c.Human
	}
	printer := display.NewPrinter(os.Stdout, st, human)

	opts := []game.Option{
		game.WithRNG(rng),
		game.WithLogger(logger),
		game.WithObserver(printer),
	}
	var recorder *phh.Recorder
	if cfg.HistoryDir != "" {
		sink, err := phh.NewDirSink(cfg.HistoryDir)
		if err != nil {
			return err
		}
		recorder = phh.NewRecorder(tc.Name, sink, nil, logger)
		opts = append(opts, game.WithObserver(recorder))
	}

	table, err := game.NewTable(tc.GameConfig(), opts...)
	if err != nil {
		return err
	}

	var humanAgent game.Agent
	if human >= 0 {
		humanAgent = display.NewPrompt(os.Stdin, os.Stdout, st, logger)
	}
	agents, err := seatTable(table, *tc, human, c.Name, humanAgent, randutil.Stream(seed, 1), logger)
	if err != nil {
		return err
	}
	start := table.Seats()

	logger.Info("Starting play",
		"table", tc.Name,
		"stakes", fmt.Sprintf("%d/%d", tc.SmallBlind, tc.BigBlind),
		"players", table.FundedSeats(),
		"hands", c.Hands)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := game.NewEngine(table, agents)
	results, err := engine.PlayHands(ctx, c.Hands)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("Interrupted, stopping")
	case err != nil:
		return err
	}

	if recorder != nil {
		logger.Info("Wrote hand histories", "dir", cfg.HistoryDir, "hands", recorder.Hands())
		if err := recorder.Err(); err != nil {
			logger.Warn("Some hand histories were not written", "error", err)
		}
	}

	fmt.Println()
	fmt.Println(st.Header.Render(fmt.Sprintf("Results after %d hands", len(results))))
	fmt.Println(standings(start, table.Seats()))
	return nil
}

// seatTable sits the configured players, with the human taking seat human
// when it is not negative, and returns an agent per bot seat.
func seatTable(t *game.Table, tc config.TableConfig, human int, name string, humanAgent game.Agent, rng *rand.Rand, logger *log.Logger) (map[int]game.Agent, error) {
	agents := map[int]game.Agent{}
	humanStack := 100 * tc.BigBlind

	for _, p := range tc.Players {
		if p.Index == human {
			humanStack = p.Stack
			continue
		}
		// a timed-out decision keeps running, so bots never share a source
		botRNG := rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))
		agent, err := bot.New(p.Strategy, botRNG, logger.WithPrefix(p.Name))
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", p.Name, err)
		}
		if timeout := tc.DecisionTimeout(); timeout > 0 {
			agent = turnclock.Wrap(agent, timeout, nil, logger)
		}
		if err := t.Sit(p.Index, game.Player{ID: p.Name, Name: p.Name}, p.Stack); err != nil {
			return nil, fmt.Errorf("seat %s: %w", p.Name, err)
		}
		agents[p.Index] = agent
	}

	if human >= 0 {
		if err := t.Sit(human, game.Player{ID: "human", Name: name}, humanStack); err != nil {
			return nil, fmt.Errorf("human seat: %w", err)
		}
		agents[human] = humanAgent
	}
	return agents, nil
}

// standings renders each occupied seat's stack and net result.
func standings(before, after []game.Seat) string {
	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers("Seat", "Player", "Stack", "Net")
	for i, s := range after {
		if !s.Occupied() {
			continue
		}
		net := s.Stack
		if i < len(before) {
			net -= before[i].Stack
		}
		t.Row(strconv.Itoa(i), s.Player.Name, strconv.Itoa(s.Stack), fmt.Sprintf("%+d", net))
	}
	return t.String()
}
