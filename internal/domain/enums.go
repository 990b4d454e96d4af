package domain

type FindingStatus string

const (
	FindingOpen       FindingStatus = "OPEN"
	FindingInProgress FindingStatus = "IN_PROGRESS"
	FindingOnHold     FindingStatus = "ON_HOLD"
	FindingClosed     FindingStatus = "CLOSED"
)

// ValidFinalStatuses is the set of statuses a last-worker stop may leave a
// finding in. OPEN is only ever an initial state, never a stop target.
var ValidFinalStatuses = map[FindingStatus]bool{
	FindingInProgress: true,
	FindingOnHold:     true,
	FindingClosed:     true,
}

type EventAction string

const (
	ActionStart EventAction = "START"
	ActionStop  EventAction = "STOP"
)
