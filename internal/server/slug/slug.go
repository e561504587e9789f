// Package slug generates short random public tokens for share links.
package slug

import (
	"crypto/rand"
	"fmt"
)

// Length is the number of characters in a generated slug.
const Length = 8

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Generator produces candidate slugs. Uniqueness checking against existing
// slugs is the caller's responsibility; implementations only generate.
type Generator interface {
	Next() (string, error)
}

// RandGenerator draws alphanumeric tokens from crypto/rand.
type RandGenerator struct {
	length int
}

func NewRandGenerator() *RandGenerator {
	return &RandGenerator{length: Length}
}

func (g *RandGenerator) Next() (string, error) {
	// Rejection sampling keeps the distribution uniform: bytes at or
	// above the largest multiple of len(alphabet) are discarded instead
	// of wrapping around onto the first characters.
	const limit = 256 - 256%len(alphabet)

	out := make([]byte, 0, g.length)
	buf := make([]byte, g.length)
	for len(out) < g.length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("reading random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == g.length {
				break
			}
		}
	}
	return string(out), nil
}
