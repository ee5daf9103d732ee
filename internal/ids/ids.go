// Package ids generates opaque identifiers, invite tokens and timestamps.
package ids

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clock returns the current time. Services take a Clock so tests can pin it.
type Clock func() time.Time

// SystemClock returns the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// New returns a new opaque identifier (UUID v4).
func New() string {
	return uuid.New().String()
}

// Token returns a URL-safe random token for invite links.
func Token() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
