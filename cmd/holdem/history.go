package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/lox/holdem-engine/internal/display"
	"github.com/lox/holdem-engine/internal/phh"
)

// HistoryCmd is the root command for PHH utilities.
type HistoryCmd struct {
	Show HistoryShowCmd `cmd:"" help:"Print hands written by play --history-dir"`
}

// HistoryShowCmd prints PHH files, one hand per file.
type HistoryShowCmd struct {
	Files []string `arg:"" name:"file" type:"existingfile" help:"PHH files to show"`
}

func (c *HistoryShowCmd) Run(g *Globals) error {
	st := display.NewStyles(display.NewRenderer(os.Stdout, !g.NoColor))
	for _, path := range c.Files {
		hand, err := loadHand(path)
		if err != nil {
			return err
		}
		renderHistory(os.Stdout, st, hand)
	}
	return nil
}

func loadHand(path string) (*phh.HandHistory, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hand, err := phh.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return hand, nil
}

var playerRef = regexp.MustCompile(`\bp(\d+)\b`)

// renderHistory prints a hand with player numbers replaced by names.
func renderHistory(w io.Writer, st display.Styles, h *phh.HandHistory) {
	name := func(p int) string {
		if p >= 1 && p <= len(h.Players) {
			return h.Players[p-1]
		}
		return "p" + strconv.Itoa(p)
	}

	header := fmt.Sprintf("Hand %s", h.HandID)
	if h.Table != "" {
		header += " • " + h.Table
	}
	if h.Year > 0 {
		header += fmt.Sprintf(" • %04d-%02d-%02d %s", h.Year, h.Month, h.Day, h.Time)
	}
	fmt.Fprintln(w, st.Header.Render(header))

	for i := range h.StartingStacks {
		line := fmt.Sprintf("%s: %d", name(i+1), h.StartingStacks[i])
		if i < len(h.FinishingStacks) {
			line += fmt.Sprintf(" -> %d", h.FinishingStacks[i])
		}
		fmt.Fprintln(w, st.Info.Render(line))
	}

	for _, action := range h.Actions {
		text := playerRef.ReplaceAllStringFunc(action, func(ref string) string {
			n, _ := strconv.Atoi(ref[1:])
			return name(n)
		})
		style := st.Action
		if strings.HasPrefix(action, "d ") {
			style = st.Street
		}
		fmt.Fprintln(w, style.Render(text))
	}
	fmt.Fprintln(w)
}
