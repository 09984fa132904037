package display

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/game"
)

var errHelp = errors.New("help requested")

const helpText = `Commands:
  fold, f            give up the hand
  check, x           pass when nothing is owed
  call, c            match the current bet
  bet N, b N         open the betting to N
  raise N, r N       raise the street total to N
  allin, a           put every chip in
  help, ?            show this text`

// Prompt is a game.Agent driven by a person typing commands.
type Prompt struct {
	in     *bufio.Scanner
	out    io.Writer
	st     Styles
	logger *log.Logger
}

func NewPrompt(in io.Reader, out io.Writer, st Styles, logger *log.Logger) *Prompt {
	return &Prompt{in: bufio.NewScanner(in), out: out, st: st, logger: logger}
}

// Decide shows the seat's view and reads commands until one is legal. When
// input runs out it checks or folds.
func (p *Prompt) Decide(v game.View) game.Action {
	p.show(v)
	for {
		fmt.Fprint(p.out, "> ")
		if !p.in.Scan() {
			p.logger.Warn("Input closed, checking or folding", "seat", v.Seat, "error", p.in.Err())
			return game.CheckOrFold(v.Legal)
		}
		a, err := ParseAction(p.in.Text(), v)
		switch {
		case errors.Is(err, errHelp):
			fmt.Fprintln(p.out, helpText)
		case err != nil:
			fmt.Fprintln(p.out, p.st.Warning.Render(err.Error()))
		default:
			return a
		}
	}
}

func (p *Prompt) show(v game.View) {
	line := fmt.Sprintf("Your cards: %s", p.st.Cards(v.Hole))
	if len(v.Board) > 0 {
		line += fmt.Sprintf("  Board: %s", p.st.Cards(v.Board))
	}
	fmt.Fprintln(p.out, line)
	fmt.Fprintln(p.out, p.st.Info.Render(fmt.Sprintf("Pot: %d  To call: %d  Stack: %d", v.Pot, v.ToCall, v.Stack)))
	fmt.Fprintln(p.out, p.st.Dim.Render("Options: "+FormatLegal(v.Legal)))
}

// FormatLegal lists legal actions, e.g. "fold | call 50 | raise 200-900".
func FormatLegal(legal []game.LegalAction) string {
	parts := make([]string, 0, len(legal))
	for _, la := range legal {
		switch {
		case la.Type == game.Call || la.Type == game.AllIn:
			parts = append(parts, fmt.Sprintf("%s %d", la.Type, la.Max))
		case la.Type == game.Bet || la.Type == game.Raise:
			if la.Min == la.Max {
				parts = append(parts, fmt.Sprintf("%s %d", la.Type, la.Min))
			} else {
				parts = append(parts, fmt.Sprintf("%s %d-%d", la.Type, la.Min, la.Max))
			}
		default:
			parts = append(parts, la.Type.String())
		}
	}
	return strings.Join(parts, " | ")
}

// ParseAction turns a typed command into an action that is legal in v.
func ParseAction(input string, v game.View) (game.Action, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return game.Action{}, errors.New("enter an action, or ? for help")
	}

	var a game.Action
	switch fields[0] {
	case "?", "h", "help":
		return game.Action{}, errHelp
	case "f", "fold":
		a.Type = game.Fold
	case "x", "k", "ch", "check":
		a.Type = game.Check
	case "c", "call":
		a.Type = game.Call
		if !v.Can(game.Call) && v.Can(game.Check) {
			a.Type = game.Check
		}
	case "a", "all", "allin", "all-in":
		a.Type = game.AllIn
	case "b", "bet", "r", "raise":
		a.Type = game.Raise
		if v.Can(game.Bet) {
			a.Type = game.Bet
		}
		la, ok := v.Bounds(a.Type)
		if !ok {
			return game.Action{}, fmt.Errorf("%s is not available", a.Type)
		}
		a.Amount = la.Min
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return game.Action{}, fmt.Errorf("invalid amount %q", fields[1])
			}
			a.Amount = n
		}
		if a.Amount < la.Min || a.Amount > la.Max {
			return game.Action{}, fmt.Errorf("%s must be between %d and %d", a.Type, la.Min, la.Max)
		}
		return a, nil
	default:
		return game.Action{}, fmt.Errorf("unknown command %q, ? for help", fields[0])
	}

	if !v.Can(a.Type) {
		return game.Action{}, fmt.Errorf("%s is not available", a.Type)
	}
	return a, nil
}
