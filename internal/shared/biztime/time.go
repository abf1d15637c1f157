// Package biztime provides the business clock used to stamp issue lifecycle events.
// Instants are kept as time.Time values; the business timezone is only applied when a
// timestamp is split into the human-facing date and time columns.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is used when no timezone is configured.
	DefaultTimezone = "UTC"

	DateLayout      = "2006-01-02"
	ClockLayout     = "15:04:05"
	TimestampLayout = "2006-01-02 15:04:05"
)

var (
	mu          sync.RWMutex
	bizLocation *time.Location
)

// Init sets the business timezone. An empty tz selects DefaultTimezone.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", tz, err)
	}
	mu.Lock()
	bizLocation = loc
	mu.Unlock()
	return nil
}

// Location returns the business timezone, UTC until Init succeeds.
func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	if bizLocation == nil {
		return time.UTC
	}
	return bizLocation
}

// Now returns the current instant in the business timezone, truncated to whole seconds
// so that stored values survive a round trip through the spreadsheet columns.
func Now() time.Time {
	return time.Now().In(Location()).Truncate(time.Second)
}

// Date formats t as a business-timezone calendar date.
func Date(t time.Time) string {
	return t.In(Location()).Format(DateLayout)
}

// Clock formats t as a business-timezone wall clock time.
func Clock(t time.Time) string {
	return t.In(Location()).Format(ClockLayout)
}

// Timestamp formats t as "2006-01-02 15:04:05" in the business timezone.
func Timestamp(t time.Time) string {
	return t.In(Location()).Format(TimestampLayout)
}

// ParseTimestamp parses a value written by Timestamp. RFC3339 input is accepted as well.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(TimestampLayout, s, Location()); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return t.In(Location()), nil
}

// FormatDuration renders d as zero-padded HH:MM:SS. Hours are not wrapped at a day
// boundary, so 27 hours renders as "27:00:00". Negative durations render as zero.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
