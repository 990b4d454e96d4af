package domain

import "time"

// ActiveSession is a derived view: one employee currently on the clock for
// one finding. It has no identity and no storage of its own.
type ActiveSession struct {
	FindingID  string
	EmployeeID string
	TaskCode   string
	StartedAt  time.Time
}

// StopRecord is the payload a resolved stop contributes to the STOP event.
type StopRecord struct {
	Status       FindingStatus
	DurationSecs int
	Evidence     []byte
}

func (r StopRecord) EvidencePresent() bool {
	return len(r.Evidence) > 0
}
