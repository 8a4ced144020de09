package results

import (
	"crypto/rand"
	"fmt"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
	// Largest multiple of len(idAlphabet) that fits in a byte; bytes at or
	// above it are rejected to keep the distribution uniform.
	idRejectAbove = 252
)

// NewID returns an 8-character identifier drawn uniformly from [a-z0-9].
func NewID() (string, error) {
	out := make([]byte, 0, idLength)
	buf := make([]byte, idLength*2)
	for len(out) < idLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate result id: %w", err)
		}
		for _, b := range buf {
			if b >= idRejectAbove {
				continue
			}
			out = append(out, idAlphabet[int(b)%len(idAlphabet)])
			if len(out) == idLength {
				break
			}
		}
	}
	return string(out), nil
}

// ValidID reports whether s has the shape of a generated ID.
func ValidID(s string) bool {
	if len(s) != idLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
