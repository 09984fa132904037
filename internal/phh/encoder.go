package phh

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// Encode writes the hand history as TOML.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return errors.New("phh: hand history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes a hand history into memory.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a hand history written by Encode.
func Decode(r io.Reader) (*HandHistory, error) {
	var h HandHistory
	if _, err := toml.NewDecoder(r).Decode(&h); err != nil {
		return nil, fmt.Errorf("phh: decode: %w", err)
	}
	return &h, nil
}

// FormatAction renders a betting action for player number p (1-based).
// raise marks an all-in that put in more than the amount to call.
func FormatAction(p int, t game.ActionType, total int, raise bool) string {
	switch t {
	case game.Fold:
		return fmt.Sprintf("p%d f", p)
	case game.Check, game.Call:
		return fmt.Sprintf("p%d cc", p)
	case game.Bet, game.Raise:
		return fmt.Sprintf("p%d cbr %d", p, total)
	case game.AllIn:
		if raise {
			return fmt.Sprintf("p%d cbr %d", p, total)
		}
		return fmt.Sprintf("p%d cc", p)
	}
	return fmt.Sprintf("# p%d %s %d", p, t, total)
}

// FormatCards renders cards without separators, e.g. "AsKd".
func FormatCards(cards []poker.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}
