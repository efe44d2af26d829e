package repository

import (
	"strings"
	"time"
)

// DateLayout is the storage format of report dates.
const DateLayout = "2006-01-02"

// storedTimeLayout is fixed-width so stored timestamps sort lexically.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// parseStoredTime parses an RFC3339 column value, returning the zero time for
// empty or malformed values.
func parseStoredTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// timeToString formats t for storage, defaulting zero values to now.
func timeToString(t time.Time) string {
	if t.IsZero() {
		return nowUTC()
	}
	return t.UTC().Format(storedTimeLayout)
}

// isUniqueViolation reports whether err came from a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nowUTC() string {
	return time.Now().UTC().Format(storedTimeLayout)
}
