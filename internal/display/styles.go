// Package display renders hands for a terminal and prompts a human player
// for decisions, line by line.
package display

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/holdem-engine/poker"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used for output.
type Styles struct {
	Header    lipgloss.Style
	Street    lipgloss.Style
	Action    lipgloss.Style
	Info      lipgloss.Style
	Win       lipgloss.Style
	Warning   lipgloss.Style
	Dim       lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
}

// NewRenderer returns a renderer for w. With color off every style renders
// as plain text.
func NewRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Street:    r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Action:    r.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		Info:      r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
		Win:       r.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Warning:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		Dim:       r.NewStyle().Foreground(lipgloss.Color("#626262")),
		RedCard:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		BlackCard: r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true),
	}
}

// Card renders one card, red for hearts and diamonds.
func (s Styles) Card(c poker.Card) string {
	if suit := c.Suit(); suit == poker.Hearts || suit == poker.Diamonds {
		return s.RedCard.Render(c.String())
	}
	return s.BlackCard.Render(c.String())
}

// Cards renders cards separated by spaces.
func (s Styles) Cards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = s.Card(c)
	}
	return strings.Join(parts, " ")
}
