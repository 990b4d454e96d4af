package engine

import (
	"fmt"
	"time"
)

// ElapsedSecs returns whole seconds between start and ref, clamped to zero
// when clocks disagree and ref lands before start. Used both for the ticking
// display and for the authoritative duration written on the STOP event.
func ElapsedSecs(start, ref time.Time) int {
	secs := int(ref.Sub(start) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// FormatHMS renders seconds as HH:MM:SS for the live timers.
func FormatHMS(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}
