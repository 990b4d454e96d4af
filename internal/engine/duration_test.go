package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestElapsedSecs(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ref  time.Time
		want int
	}{
		{"ninety seconds", start.Add(90 * time.Second), 90},
		{"floors sub-second", start.Add(90*time.Second + 900*time.Millisecond), 90},
		{"zero", start, 0},
		{"clock skew clamps to zero", start.Add(-30 * time.Second), 0},
		{"hours", start.Add(3*time.Hour + 5*time.Minute), 11100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ElapsedSecs(start, tc.ref))
		})
	}
}

func TestFormatHMS(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatHMS(0))
	assert.Equal(t, "00:01:30", FormatHMS(90))
	assert.Equal(t, "02:05:09", FormatHMS(2*3600+5*60+9))
	assert.Equal(t, "27:00:00", FormatHMS(27*3600), "hours are not wrapped at 24")
	assert.Equal(t, "00:00:00", FormatHMS(-5))
}
