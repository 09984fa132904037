package game

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/gameid"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/poker"
)

// Evaluator scores a seat's hole cards against the board. Lower is stronger.
type Evaluator func(hole, board []poker.Card) poker.HandRank

// DeckFactory builds the deck for a new hand.
type DeckFactory func(rng *rand.Rand) *poker.Deck

// Option configures a Table, or a single hand when passed to StartHand.
type Option func(*options)

type options struct {
	rng       *rand.Rand
	newDeck   DeckFactory
	evaluate  Evaluator
	logger    *log.Logger
	observers []Observer
	button    int
	newID     func() string
}

func defaultOptions() options {
	rng, _ := randutil.FromClock()
	return options{
		rng:      rng,
		newDeck:  poker.NewDeck,
		evaluate: poker.Evaluate,
		logger:   log.New(io.Discard),
		button:   -1,
		newID:    gameid.Generate,
	}
}

// WithRNG sets the random source used for shuffling and the first button.
func WithRNG(rng *rand.Rand) Option {
	return func(o *options) {
		if rng == nil {
			panic("game: WithRNG requires a non-nil rng")
		}
		o.rng = rng
	}
}

// WithDeckFactory replaces the shuffled deck, typically with a stacked one.
func WithDeckFactory(f DeckFactory) Option {
	return func(o *options) {
		o.newDeck = f
	}
}

// WithEvaluator replaces the showdown evaluator.
func WithEvaluator(e Evaluator) Option {
	return func(o *options) {
		o.evaluate = e
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithObserver adds an observer for hand events.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observers = append(o.observers, obs)
	}
}

// WithButton puts the button on seat for the next hand instead of rotating.
func WithButton(seat int) Option {
	return func(o *options) {
		o.button = seat
	}
}

// WithHandIDs sets the generator for hand identifiers.
func WithHandIDs(f func() string) Option {
	return func(o *options) {
		o.newID = f
	}
}

// StackedDeck returns a DeckFactory dealing cards in the given order.
// It panics if the cards are invalid, so it is meant for tests and replays.
func StackedDeck(cards []poker.Card) DeckFactory {
	return func(*rand.Rand) *poker.Deck {
		d, err := poker.NewOrderedDeck(cards)
		if err != nil {
			panic(err)
		}
		return d
	}
}
