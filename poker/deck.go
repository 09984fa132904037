package poker

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrDeckEmpty is returned when more cards are drawn than remain in the deck.
var ErrDeckEmpty = errors.New("deck empty")

// Deck is an ordered sequence of unique cards consumed front to back.
type Deck struct {
	cards []Card
	next  int
}

// NewDeck returns a full 52-card deck shuffled with rng.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("poker: NewDeck requires a non-nil rng")
	}
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < 13; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

// NewOrderedDeck returns a deck that deals cards in exactly the given order.
// The cards must be valid and unique; fewer than 52 is allowed.
func NewOrderedDeck(cards []Card) (*Deck, error) {
	var seen Hand
	for _, c := range cards {
		if !c.Valid() {
			return nil, fmt.Errorf("ordered deck: %w", errInvalidCard)
		}
		if seen.HasCard(c) {
			return nil, fmt.Errorf("ordered deck: duplicate card %s", c)
		}
		seen.AddCard(c)
	}
	return &Deck{cards: append([]Card(nil), cards...)}, nil
}

// Draw removes and returns the next n cards.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n < 0 || n > d.Remaining() {
		return nil, fmt.Errorf("draw %d with %d remaining: %w", n, d.Remaining(), ErrDeckEmpty)
	}
	out := make([]Card, n)
	copy(out, d.cards[d.next:d.next+n])
	d.next += n
	return out, nil
}

// DrawOne draws a single card.
func (d *Deck) DrawOne() (Card, error) {
	cards, err := d.Draw(1)
	if err != nil {
		return 0, err
	}
	return cards[0], nil
}

// Burn discards the next card.
func (d *Deck) Burn() error {
	_, err := d.Draw(1)
	return err
}

// Remaining reports how many cards are left.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
