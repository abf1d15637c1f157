package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "zero", d: 0, want: "00:00:00"},
		{name: "under a minute", d: 42 * time.Second, want: "00:00:42"},
		{name: "hours minutes seconds", d: 3*time.Hour + 45*time.Minute + 30*time.Second, want: "03:45:30"},
		{name: "more than a day is not wrapped", d: 27*time.Hour + 5*time.Second, want: "27:00:05"},
		{name: "three digit hours", d: 125 * time.Hour, want: "125:00:00"},
		{name: "negative clamps to zero", d: -time.Minute, want: "00:00:00"},
		{name: "sub-second truncated", d: 1500 * time.Millisecond, want: "00:00:01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.d))
		})
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	require.NoError(t, Init("UTC"))

	ts := time.Date(2025, 3, 14, 10, 0, 5, 0, time.UTC)
	s := Timestamp(ts)
	assert.Equal(t, "2025-03-14 10:00:05", s)
	assert.Equal(t, "2025-03-14", Date(ts))
	assert.Equal(t, "10:00:05", Clock(ts))

	parsed, err := ParseTimestamp(s)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts))
}

func TestParseTimestamp_AcceptsRFC3339(t *testing.T) {
	require.NoError(t, Init("UTC"))

	parsed, err := ParseTimestamp("2025-03-14T10:00:05Z")
	require.NoError(t, err)
	assert.Equal(t, 10, parsed.Hour())

	_, err = ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestInit_InvalidTimezone(t *testing.T) {
	err := Init("Mars/Olympus_Mons")
	assert.Error(t, err)
}
