// Package ids generates and matches the short identifiers used for tasks and
// sections.
package ids

import (
	"crypto/sha256"
	"encoding/base32"
	"time"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/google/uuid"
)

// DefaultLength is the standard length for generated IDs.
const DefaultLength = 8

// maxAttempts bounds how many candidates New tries before widening the ID.
const maxAttempts = 16

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

// GenerateWithTimestamp appends a timestamp to input before hashing.
func GenerateWithTimestamp(input string, timestamp time.Time, length int) string {
	return Generate(input+timestamp.Format(time.RFC3339Nano), length)
}

// New returns a fresh ID that taken reports as unused.
//
// Each candidate hashes a random UUID with the timestamp, so two IDs created
// within the same clock tick still differ. If every candidate of the default
// length collides, the length grows until one is free.
func New(timestamp time.Time, taken func(string) bool) string {
	length := DefaultLength
	for {
		for attempt := 0; attempt < maxAttempts; attempt++ {
			candidate := GenerateWithTimestamp(uuid.NewString(), timestamp, length)
			if taken == nil || !taken(candidate) {
				return candidate
			}
		}
		length *= 2
	}
}
