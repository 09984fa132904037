// Package poker provides playing cards, a 52-card deck and hand evaluation
// for Texas Hold'em.
package poker

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single playing card stored as one bit of a uint64.
// Layout: [13 clubs][13 diamonds][13 hearts][13 spades], rank 0 (two) first.
type Card uint64

// Hand is a set of cards, one bit per card.
type Hand uint64

// Suits
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

// Ranks, 0-12 for 2-A
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

var errInvalidCard = errors.New("invalid card")

// NewCard creates a card from rank (0-12) and suit (0-3).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (suit*13 + rank)
}

// index returns the bit position (0-51), or 255 for the zero card.
func (c Card) index() uint8 {
	if c == 0 {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c)))
}

// Valid reports whether c is exactly one of the 52 cards.
func (c Card) Valid() bool {
	return bits.OnesCount64(uint64(c)) == 1 && c.index() < 52
}

// Rank returns the rank (0-12), or 255 for an invalid card.
func (c Card) Rank() uint8 {
	if !c.Valid() {
		return 255
	}
	return c.index() % 13
}

// Suit returns the suit (0-3), or 255 for an invalid card.
func (c Card) Suit() uint8 {
	if !c.Valid() {
		return 255
	}
	return c.index() / 13
}

// String returns the two character form, e.g. "As" or "Td".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string(rankChars[c.Rank()]) + string(suitChars[c.Suit()])
}

// ParseCard parses a card such as "As", "td" or "9C".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q", errInvalidCard, s)
	}
	rank := strings.IndexByte(rankChars, upper(s[0]))
	if rank < 0 {
		return 0, fmt.Errorf("%w: bad rank %q", errInvalidCard, s[0])
	}
	suit := strings.IndexByte(suitChars, lower(s[1]))
	if suit < 0 {
		return 0, fmt.Errorf("%w: bad suit %q", errInvalidCard, s[1])
	}
	return NewCard(uint8(rank), uint8(suit)), nil
}

// ParseCards parses a whitespace separated list such as "As Kd 7h".
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins cards with spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// NewHand creates a hand from cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard adds a card to the hand.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard reports whether the hand holds c.
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// Cards expands the hand into individual cards in bit order.
func (h Hand) Cards() []Card {
	out := make([]Card, 0, h.CountCards())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		out = append(out, Card(rest&-rest))
	}
	return out
}
