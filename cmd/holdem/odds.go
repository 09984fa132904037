package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/lox/holdem-engine/internal/display"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/poker"
)

// OddsCmd estimates showdown equity by Monte Carlo runouts.
type OddsCmd struct {
	Hands      []string `arg:"" help:"Hands such as 'AcKd' or 'Ac Kd'"`
	Board      string   `short:"b" help:"Board cards, e.g. 'Td7s8h'"`
	Opponents  int      `short:"o" default:"1" help:"Random opponents when a single hand is given"`
	Iterations int      `short:"i" default:"100000" help:"Number of Monte Carlo iterations"`
	Seed       *int64   `help:"Random seed for reproducible results"`
}

func (c *OddsCmd) Run(g *Globals) error {
	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := randutil.New(seed)

	hands := make([][]poker.Card, 0, len(c.Hands))
	for i, s := range c.Hands {
		h, err := parseCompact(s)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		hands = append(hands, h)
	}
	board, err := parseCompact(c.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}

	var (
		labels  []string
		results []poker.EquityResult
	)
	started := time.Now()
	if len(hands) == 1 {
		res, err := poker.EquityParallel(context.Background(), hands[0], board, c.Opponents, c.Iterations, 0, rng)
		if err != nil {
			return err
		}
		labels = []string{poker.FormatCards(hands[0]) + fmt.Sprintf(" vs %d random", c.Opponents)}
		results = []poker.EquityResult{res}
	} else {
		results, err = poker.Odds(hands, board, c.Iterations, rng)
		if err != nil {
			return err
		}
		for _, h := range hands {
			labels = append(labels, poker.FormatCards(h))
		}
	}

	st := display.NewStyles(display.NewRenderer(os.Stdout, !g.NoColor))
	header := fmt.Sprintf("%d iterations in %s", c.Iterations, time.Since(started).Round(time.Millisecond))
	if len(board) > 0 {
		header += " • board " + poker.FormatCards(board)
	}
	fmt.Println(st.Header.Render(header))
	fmt.Println(oddsTable(labels, results))
	return nil
}

func oddsTable(labels []string, results []poker.EquityResult) string {
	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers("Hand", "Win", "Tie", "Equity")
	for i, r := range results {
		n := float64(max(r.Samples, 1))
		t.Row(
			labels[i],
			fmt.Sprintf("%.2f%%", 100*float64(r.Wins)/n),
			fmt.Sprintf("%.2f%%", 100*float64(r.Ties)/n),
			fmt.Sprintf("%.2f%%", 100*r.Equity()),
		)
	}
	return t.String()
}

// parseCompact accepts cards with or without spaces, e.g. "AsKd" or "As Kd".
func parseCompact(s string) ([]poker.Card, error) {
	s = strings.Join(strings.Fields(s), "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("cannot split %q into cards", s)
	}
	cards := make([]poker.Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := poker.ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
