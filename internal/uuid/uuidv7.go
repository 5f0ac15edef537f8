// Package uuid generates the time-ordered identifiers used for audit rows
// and request correlation.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New generates a new UUIDv7 based on the current timestamp.
// UUIDv7 is time-ordered and suitable for use as database primary keys.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Fallback to a random UUIDv4 if the clock sequence cannot be read
		return googleuuid.New().String()
	}
	return id.String()
}

// CorrelationID returns candidate when it is a well-formed UUID and a fresh
// UUIDv7 otherwise, so arbitrary header values never reach the logs.
func CorrelationID(candidate string) string {
	if IsValid(candidate) {
		return candidate
	}
	return New()
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	if s == "" {
		return false
	}
	_, err := googleuuid.Parse(s)
	return err == nil
}
