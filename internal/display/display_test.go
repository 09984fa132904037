package display

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func plainStyles(w io.Writer) Styles {
	return NewStyles(NewRenderer(w, false))
}

// facingBet is a view where the seat faces a 50 bet with 1000 behind.
var facingBet = game.View{
	Seat:   1,
	ToCall: 50,
	Stack:  1000,
	Legal: []game.LegalAction{
		{Type: game.Fold},
		{Type: game.Call, Min: 50, Max: 50},
		{Type: game.Raise, Min: 100, Max: 1050},
		{Type: game.AllIn, Min: 1050, Max: 1050},
	},
}

var unopened = game.View{
	Seat:  1,
	Stack: 1000,
	Legal: []game.LegalAction{
		{Type: game.Fold},
		{Type: game.Check},
		{Type: game.Bet, Min: 10, Max: 1000},
		{Type: game.AllIn, Min: 1000, Max: 1000},
	},
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		input string
		view  game.View
		want  game.Action
		err   string
	}{
		{"f", facingBet, game.Action{Type: game.Fold}, ""},
		{"CALL", facingBet, game.Action{Type: game.Call}, ""},
		{"c", unopened, game.Action{Type: game.Check}, ""},
		{"x", unopened, game.Action{Type: game.Check}, ""},
		{"check", facingBet, game.Action{}, "check is not available"},
		{"r 300", facingBet, game.Action{Type: game.Raise, Amount: 300}, ""},
		{"raise", facingBet, game.Action{Type: game.Raise, Amount: 100}, ""},
		{"bet 40", unopened, game.Action{Type: game.Bet, Amount: 40}, ""},
		{"r 40", unopened, game.Action{Type: game.Bet, Amount: 40}, ""},
		{"r 60", facingBet, game.Action{}, "raise must be between 100 and 1050"},
		{"b lots", unopened, game.Action{}, `invalid amount "lots"`},
		{"all-in", facingBet, game.Action{Type: game.AllIn}, ""},
		{"", facingBet, game.Action{}, "enter an action"},
		{"shove", facingBet, game.Action{}, `unknown command "shove"`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAction(tt.input, tt.view)
			if tt.err != "" {
				assert.ErrorContains(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseAction("?", facingBet)
	assert.ErrorIs(t, err, errHelp)
}

func TestFormatLegal(t *testing.T) {
	assert.Equal(t, "fold | call 50 | raise 100-1050 | allin 1050", FormatLegal(facingBet.Legal))
	assert.Equal(t, "fold | check | bet 10-1000 | allin 1000", FormatLegal(unopened.Legal))
}

func TestPromptRetriesUntilLegal(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("check\n?\nr 250\n"), &out, plainStyles(&out), quietLogger())

	v := facingBet
	v.Hole = poker.MustParseCards("As Kd")
	a := p.Decide(v)
	assert.Equal(t, game.Action{Type: game.Raise, Amount: 250}, a)

	text := out.String()
	assert.Contains(t, text, "Your cards: As Kd")
	assert.Contains(t, text, "check is not available")
	assert.Contains(t, text, "Commands:")
}

func TestPromptEOF(t *testing.T) {
	p := NewPrompt(strings.NewReader(""), io.Discard, plainStyles(io.Discard), quietLogger())
	assert.Equal(t, game.Action{Type: game.Fold}, p.Decide(facingBet))
	assert.Equal(t, game.Action{Type: game.Check}, p.Decide(unopened))
}

func TestPrinter(t *testing.T) {
	deck := poker.MustParseCards("As Kd Qh Jc 2c 3d 4h 5s 6c 7d 8h 9s")
	tbl, err := game.NewTable(game.Config{Seats: 2, SmallBlind: 5, BigBlind: 10},
		game.WithLogger(quietLogger()),
		game.WithDeckFactory(game.StackedDeck(deck)),
		game.WithHandIDs(func() string { return "h1" }),
	)
	require.NoError(t, err)
	require.NoError(t, tbl.Sit(0, game.Player{ID: "b", Name: "bob"}, 1000))
	require.NoError(t, tbl.Sit(1, game.Player{ID: "a", Name: "alice"}, 1000))

	var out bytes.Buffer
	printer := NewPrinter(&out, plainStyles(&out), 1)
	e := game.NewEngine(tbl, nil, game.WithButton(0), game.WithObserver(printer))
	_, err = e.PlayHand(context.Background())
	require.NoError(t, err)

	text := out.String()
	for _, want := range []string{
		"Hand h1 • 2 players • 5/10",
		"Seat 0: bob (BTN) - 1000",
		"bob: posts small blind 5",
		"alice: posts big blind 10",
		"Dealt to alice: As Qh",
		"bob: folds",
		"alice wins 15 from the pot",
	} {
		assert.Contains(t, text, want)
	}
	assert.NotContains(t, text, "Dealt to bob")
}

func TestDescribeAction(t *testing.T) {
	ev := game.ActionTaken{
		Action:  game.Action{Type: game.Call},
		Applied: game.Applied{Type: game.Call, Chips: 40, Total: 50, AllIn: true},
	}
	assert.Equal(t, "bob: calls 40 and is all-in", DescribeAction("bob", ev))

	ev = game.ActionTaken{Action: game.Action{Type: game.Fold}, Forced: true}
	assert.Equal(t, "bob: folds (forced)", DescribeAction("bob", ev))
}
