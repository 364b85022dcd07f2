// Package id generates identifiers for entities created by this service.
// Identifiers are UUIDv7 strings, so they sort by creation time.
package id

import (
	"github.com/google/uuid"
)

// New returns a fresh UUIDv7 in canonical string form.
func New() string {
	v, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.NewString()
	}
	return v.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
