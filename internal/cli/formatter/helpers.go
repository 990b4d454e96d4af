package formatter

import (
	"fmt"
	"time"

	"github.com/rgaitan/wotrack/internal/domain"
	"github.com/rgaitan/wotrack/internal/engine"
)

// StatusPill returns a colored status indicator for a finding status.
func StatusPill(status domain.FindingStatus) string {
	switch status {
	case domain.FindingOpen:
		return StyleBlue.Render("○ Open")
	case domain.FindingInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.FindingOnHold:
		return StyleYellow.Render("◑ On Hold")
	case domain.FindingClosed:
		return StyleDim.Render("✔ Closed")
	default:
		return StyleDim.Render(string(status))
	}
}

// ActionBadge returns a colored label for a log event action.
func ActionBadge(action domain.EventAction) string {
	if action == domain.ActionStart {
		return StyleGreen.Render("START")
	}
	return StyleRed.Render("STOP")
}

// AvailabilityPill returns a colored availability indicator for a material.
func AvailabilityPill(available bool) string {
	if available {
		return StyleGreen.Render("● Available")
	}
	return StyleRed.Render("○ Unavailable")
}

// Duration renders elapsed seconds as a dimmed HH:MM:SS cell.
func Duration(secs int) string {
	return StyleFg.Render(engine.FormatHMS(secs))
}

// Elapsed renders the running time since start against a reference instant.
func Elapsed(startedAt, now time.Time) string {
	return StyleGreen.Render(engine.FormatHMS(engine.ElapsedSecs(startedAt, now)))
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Timestamp renders an event time in local clock form.
func Timestamp(t time.Time) string {
	return StyleFg.Render(t.Local().Format("2006-01-02 15:04:05"))
}

// Qty renders a material quantity with its unit, trimming trailing zeros.
func Qty(qty float64, unit string) string {
	s := fmt.Sprintf("%g", qty)
	if unit != "" {
		s += " " + unit
	}
	return s
}
