package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ContentHash returns a deterministic digest of the normalised text.
// Normalisation collapses runs of whitespace to single spaces and trims the
// ends, so re-uploads that differ only in formatting hash identically.
func ContentHash(text string) string {
	normalised := strings.Join(strings.Fields(text), " ")
	sum := sha256.Sum256([]byte(normalised))
	return hex.EncodeToString(sum[:])
}

// NormaliseText trims surrounding whitespace from caller-provided text.
// Validation of emptiness happens against the normalised form.
func NormaliseText(text string) string {
	return strings.TrimSpace(text)
}
