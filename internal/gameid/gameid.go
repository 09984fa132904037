// Package gameid generates hand identifiers: UUIDv7 values encoded as
// 26-character lowercase Crockford base32, so they sort by creation time.
package gameid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded identifier.
const Length = 26

// New returns a fresh identifier.
func New() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuidv7: %w", err)
	}
	return Encode(id), nil
}

// Generate is like New but panics if the system random source fails.
func Generate() string {
	id, err := New()
	if err != nil {
		panic(err)
	}
	return id
}

// bit returns bit k of the 130-bit value formed by two zero bits followed
// by the 128 bits of id.
func bit(id uuid.UUID, k int) byte {
	k -= 2
	if k < 0 {
		return 0
	}
	return (id[k/8] >> (7 - k%8)) & 1
}

// Encode renders a UUID in the identifier form.
func Encode(id uuid.UUID) string {
	var out [Length]byte
	for i := range out {
		var v byte
		for j := 0; j < 5; j++ {
			v = v<<1 | bit(id, i*5+j)
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Decode parses an identifier back into its UUID.
func Decode(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := 0; i < Length; i++ {
		v := strings.IndexByte(alphabet, s[i])
		for j := 0; j < 5; j++ {
			k := i*5 + j - 2
			if k < 0 || (v>>(4-j))&1 == 0 {
				continue
			}
			id[k/8] |= 1 << (7 - k%8)
		}
	}
	return id, nil
}

// Validate checks that s is a well formed identifier.
func Validate(s string) error {
	if len(s) != Length {
		return fmt.Errorf("hand id must be %d characters, got %d", Length, len(s))
	}
	if s[0] > '7' {
		return fmt.Errorf("hand id first character must be 0-7, got %c", s[0])
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(alphabet, s[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", s[i], i)
		}
	}
	return nil
}
