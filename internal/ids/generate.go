package ids

import (
	"crypto/sha256"
	"encoding/base32"

	internalstrings "github.com/amonks/tasks/internal/strings"
	"github.com/google/uuid"
)

// DefaultLength is the standard length for generated IDs.
const DefaultLength = 8

// Generate creates a deterministic, lowercase base32 ID derived from input.
func Generate(input string, length int) string {
	hash := sha256.Sum256([]byte(input))
	encoded := base32.StdEncoding.EncodeToString(hash[:])
	if length <= 0 {
		return ""
	}
	if length > len(encoded) {
		length = len(encoded)
	}
	return internalstrings.NormalizeLower(encoded[:length])
}

// New returns a random ID of DefaultLength characters.
func New() string {
	return Generate(uuid.NewString(), DefaultLength)
}

// UniqueFrom draws IDs from generate until taken reports false.
func UniqueFrom(generate func() string, taken func(string) bool) string {
	for {
		id := generate()
		if taken == nil || !taken(id) {
			return id
		}
	}
}
