package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// shortIDAlphabet deliberately excludes visually ambiguous characters
// (0/O, 1/I) so the ids survive being typed or read aloud.
const shortIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// ShortIDLength is the length of operator-facing quote ids.
const ShortIDLength = 6

// GenerateShortID generates a random human-transcribable quote id. The
// alphabet has 32 characters, so reducing each random byte mod 32 introduces
// no bias. Uniqueness is the caller's concern.
func GenerateShortID() (string, error) {
	b := make([]byte, ShortIDLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	var sb strings.Builder
	for _, v := range b {
		sb.WriteByte(shortIDAlphabet[int(v)%len(shortIDAlphabet)])
	}
	return sb.String(), nil
}

// IsValidShortID reports whether s looks like a generated quote id. Lowercase
// input is accepted since ids are compared case-insensitively.
func IsValidShortID(s string) bool {
	if len(s) != ShortIDLength {
		return false
	}
	for _, r := range strings.ToUpper(s) {
		if !strings.ContainsRune(shortIDAlphabet, r) {
			return false
		}
	}
	return true
}
