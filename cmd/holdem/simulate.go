package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/lox/holdem-engine/internal/display"
	"github.com/lox/holdem-engine/internal/simulator"
)

// SimulateCmd runs bots against each other on many tables concurrently.
type SimulateCmd struct {
	Tables     int      `default:"4" help:"Number of tables to run at once"`
	Hands      int      `short:"n" default:"1000" help:"Hands per table"`
	Seats      int      `default:"6" help:"Seats per table"`
	Stack      int      `default:"200" help:"Starting stack"`
	SmallBlind int      `default:"1" help:"Small blind"`
	BigBlind   int      `default:"2" help:"Big blind"`
	Seed       *int64   `help:"Deterministic RNG seed (optional)"`
	Strategies []string `help:"Strategies given to seats in turn (default: all built-in)"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	logger, err := newLogger(os.Stderr, g.LogLevel)
	if err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting simulation", "tables", c.Tables, "hands", c.Hands, "seats", c.Seats, "seed", seed)
	started := time.Now()
	report, err := simulator.Run(ctx, simulator.Config{
		Tables:     c.Tables,
		Hands:      c.Hands,
		Seats:      c.Seats,
		Stack:      c.Stack,
		SmallBlind: c.SmallBlind,
		BigBlind:   c.BigBlind,
		Seed:       seed,
		Strategies: c.Strategies,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(started)

	st := display.NewStyles(display.NewRenderer(os.Stdout, !g.NoColor))
	fmt.Println(st.Header.Render(fmt.Sprintf("%d hands on %d tables in %s", report.Hands, len(report.Tables), elapsed.Round(time.Millisecond))))
	fmt.Println(st.Info.Render(fmt.Sprintf("Showdowns: %d  Average pot: %.1f  Biggest pot: %d",
		report.Showdowns, average(report.PotTotal, report.Hands), report.BiggestPot)))
	fmt.Println(strategyTable(report))
	return nil
}

func average(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}

// strategyTable renders bb/hand per strategy with a 95% interval.
func strategyTable(r *simulator.Report) string {
	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers("Strategy", "Hands", "bb/hand", "95% CI", "Showdown wins", "Other wins")
	for _, name := range r.Strategies() {
		s := r.ByStrategy[name]
		low, high := s.ConfidenceInterval95()
		t.Row(
			name,
			strconv.Itoa(s.Hands),
			fmt.Sprintf("%+.3f", s.Mean()),
			fmt.Sprintf("[%+.3f, %+.3f]", low, high),
			strconv.Itoa(s.ShowdownWins),
			strconv.Itoa(s.NonShowdownWins),
		)
	}
	return t.String()
}
