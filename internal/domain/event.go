package domain

import "time"

// ManhourEvent is one append-only row in the performing log. Sessions are
// never stored; they are derived by folding these events in (Timestamp, Seq)
// order. Seq is assigned by the store at insert time and breaks timestamp
// ties in insertion order.
type ManhourEvent struct {
	Seq         int64
	ID          string
	WorkOrderID string
	FindingID   string
	EmployeeID  string
	TaskCode    string
	Action      EventAction
	Timestamp   time.Time

	// STOP extensions. Nil on START rows.
	FinalStatus  *FindingStatus
	DurationSecs *int
	Evidence     []byte
}

func (e *ManhourEvent) HasEvidence() bool {
	return len(e.Evidence) > 0
}
