package domain

import (
	"fmt"
	"time"
)

type Finding struct {
	ID          string
	WorkOrderID string
	FindingNo   string
	Description string
	ActionGiven string
	ImageURL    string
	Status      FindingStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EffectiveStatus treats a blank status as OPEN. Imported catalogs may omit
// the status column entirely.
func (f *Finding) EffectiveStatus() FindingStatus {
	if f.Status == "" {
		return FindingOpen
	}
	return f.Status
}

// ApplyFinal transitions the finding to the status chosen at last-worker stop
// time. This is the only mutation path for Status after creation. A CLOSED
// finding may be worked again, so the last-worker stop of that later session
// can move it to any final status, including straight back to CLOSED.
func (f *Finding) ApplyFinal(status FindingStatus, now time.Time) error {
	if !ValidFinalStatuses[status] {
		return fmt.Errorf("invalid final status %q", status)
	}
	f.Status = status
	f.UpdatedAt = now
	return nil
}

func (f *Finding) IsClosed() bool {
	return f.EffectiveStatus() == FindingClosed
}
