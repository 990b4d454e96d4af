package engine

import "github.com/rgaitan/wotrack/internal/domain"

type StartOutcome string

const (
	// StartProceed: no one is on the finding, append immediately.
	StartProceed StartOutcome = "proceed"
	// StartAlreadyActive: the same employee already holds an open session on
	// this finding. No event may be appended.
	StartAlreadyActive StartOutcome = "already_active"
	// StartConflict: other employees are active. The caller must confirm
	// joining before the START is appended.
	StartConflict StartOutcome = "conflict"
)

// StartDecision is the conflict-policy verdict for a proposed START.
// ActiveOthers is populated only for StartConflict.
type StartDecision struct {
	Outcome      StartOutcome
	ActiveOthers []domain.ActiveSession
}

// DecideStart applies the start conflict policy against the current log.
// It reads nothing but the events passed in and appends nothing itself.
func DecideStart(events []domain.ManhourEvent, findingID, employeeID string) StartDecision {
	sessions := ActiveSessions(events, findingID)

	for _, s := range sessions {
		if s.EmployeeID == employeeID {
			return StartDecision{Outcome: StartAlreadyActive}
		}
	}

	if len(sessions) > 0 {
		return StartDecision{Outcome: StartConflict, ActiveOthers: sessions}
	}

	return StartDecision{Outcome: StartProceed}
}
