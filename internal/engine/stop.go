package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/rgaitan/wotrack/internal/domain"
)

var (
	// ErrEvidenceRequired is returned when a CLOSED finalization is attempted
	// without an attachment. Nothing is appended until evidence is supplied.
	ErrEvidenceRequired = errors.New("closure evidence is mandatory")
	// ErrInvalidStatus is returned for a finalization status outside the
	// allowed terminal set.
	ErrInvalidStatus = errors.New("invalid final status")
)

type StopPromptOutcome string

const (
	StopNoActiveSessions StopPromptOutcome = "no_active_sessions"
	StopSingleCandidate  StopPromptOutcome = "single_candidate"
	StopSelectCandidate  StopPromptOutcome = "select_candidate"
)

// StopPrompt tells the caller whether a stop target is implicit, ambiguous,
// or nonexistent. Candidates is empty only for StopNoActiveSessions.
type StopPrompt struct {
	Outcome    StopPromptOutcome
	Candidates []domain.ActiveSession
}

// PromptStop is the first half of the stop state machine: it determines who
// could be stopped. With two or more candidates the specific employee must be
// chosen externally; the engine never guesses.
func PromptStop(events []domain.ManhourEvent, findingID string) StopPrompt {
	sessions := ActiveSessions(events, findingID)
	switch len(sessions) {
	case 0:
		return StopPrompt{Outcome: StopNoActiveSessions}
	case 1:
		return StopPrompt{Outcome: StopSingleCandidate, Candidates: sessions}
	default:
		return StopPrompt{Outcome: StopSelectCandidate, Candidates: sessions}
	}
}

type StopOutcome string

const (
	// StopNotActive: the chosen employee has no open session here. Stopping
	// them is a no-op, never a fault.
	StopNotActive StopOutcome = "not_active"
	// StopPassThrough: others remain active, so the finding's status is
	// untouched and the STOP records IN_PROGRESS.
	StopPassThrough StopOutcome = "pass_through"
	// StopRequiresFinalStatus: this is the last active worker; a terminal
	// status (and evidence, if closing) must be supplied before anything is
	// appended.
	StopRequiresFinalStatus StopOutcome = "requires_final_status"
)

// StopResolution is the verdict for stopping one specific employee.
// Session is the session being stopped; Others are the sessions that remain.
type StopResolution struct {
	Outcome StopOutcome
	Session domain.ActiveSession
	Others  []domain.ActiveSession
}

// ResolveStop is the second half of the stop machine, run once an employee
// has been chosen.
func ResolveStop(events []domain.ManhourEvent, findingID, employeeID string) StopResolution {
	sessions := ActiveSessions(events, findingID)

	var target *domain.ActiveSession
	others := make([]domain.ActiveSession, 0, len(sessions))
	for _, s := range sessions {
		if s.EmployeeID == employeeID {
			t := s
			target = &t
			continue
		}
		others = append(others, s)
	}

	if target == nil {
		return StopResolution{Outcome: StopNotActive}
	}
	if len(others) > 0 {
		return StopResolution{Outcome: StopPassThrough, Session: *target, Others: others}
	}
	return StopResolution{Outcome: StopRequiresFinalStatus, Session: *target}
}

// PassThroughStop builds the STOP payload for a non-last worker: status stays
// IN_PROGRESS and the duration covers their own session only.
func PassThroughStop(session domain.ActiveSession, stoppedAt time.Time) domain.StopRecord {
	return domain.StopRecord{
		Status:       domain.FindingInProgress,
		DurationSecs: ElapsedSecs(session.StartedAt, stoppedAt),
	}
}

// Finalize builds the STOP payload for the last active worker. The chosen
// status must be one of the terminal set, and CLOSED demands a non-empty
// evidence attachment. On error nothing should be appended.
func Finalize(session domain.ActiveSession, status domain.FindingStatus, stoppedAt time.Time, evidence []byte) (domain.StopRecord, error) {
	if !domain.ValidFinalStatuses[status] {
		return domain.StopRecord{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if status == domain.FindingClosed && len(evidence) == 0 {
		return domain.StopRecord{}, ErrEvidenceRequired
	}
	return domain.StopRecord{
		Status:       status,
		DurationSecs: ElapsedSecs(session.StartedAt, stoppedAt),
		Evidence:     evidence,
	}, nil
}
