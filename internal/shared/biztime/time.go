// Package biztime centralizes business time handling. All storage and
// transport use UTC; settlement decisions (expiry checks, paid-at stamps)
// read the clock through this package so tests can reason about boundaries.
package biztime

import (
	"fmt"
	"time"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// IsExpired reports whether the given expiry has passed. The boundary rule
// is strict: a record expires only when now is strictly after expiresAt, so
// a settlement arriving exactly at expiresAt still succeeds.
func IsExpired(expiresAt *time.Time) bool {
	if expiresAt == nil {
		return false
	}
	return NowUTC().After(*expiresAt)
}

// ToUTC converts a time (any timezone) to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// FormatRFC3339 formats a UTC time for transport using RFC3339.
func FormatRFC3339(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseRFC3339 parses an RFC3339 timestamp into UTC.
func ParseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp format %q: %w", s, err)
	}
	return t.UTC(), nil
}
