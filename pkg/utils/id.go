package utils

import "github.com/google/uuid"

// NewID returns a random unique identifier for documents, analyses, and comparables.
func NewID() string {
	return uuid.NewString()
}
