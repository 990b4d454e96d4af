package engine

import (
	"testing"
	"time"

	"github.com/rgaitan/wotrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptStop_NoActiveSessions(t *testing.T) {
	p := PromptStop(nil, "F1")
	assert.Equal(t, StopNoActiveSessions, p.Outcome)
	assert.Empty(t, p.Candidates)
}

func TestPromptStop_SingleCandidate(t *testing.T) {
	log := []domain.ManhourEvent{evt(1, "F1", "E1", domain.ActionStart, t0)}

	p := PromptStop(log, "F1")
	assert.Equal(t, StopSingleCandidate, p.Outcome)
	require.Len(t, p.Candidates, 1)
	assert.Equal(t, "E1", p.Candidates[0].EmployeeID)
}

func TestPromptStop_SelectCandidate(t *testing.T) {
	log := []domain.ManhourEvent{
		evt(1, "F1", "E1", domain.ActionStart, t0),
		evt(2, "F1", "E2", domain.ActionStart, t0.Add(time.Minute)),
	}

	p := PromptStop(log, "F1")
	assert.Equal(t, StopSelectCandidate, p.Outcome)
	assert.Len(t, p.Candidates, 2)
}

func TestResolveStop_NotActive(t *testing.T) {
	log := []domain.ManhourEvent{evt(1, "F1", "E1", domain.ActionStart, t0)}

	r := ResolveStop(log, "F1", "E9")
	assert.Equal(t, StopNotActive, r.Outcome)
}

func TestResolveStop_NotActive_Repeatable(t *testing.T) {
	// Resolving a stop twice for the same employee must stay a no-op.
	log := []domain.ManhourEvent{
		evt(1, "F1", "E1", domain.ActionStart, t0),
		evt(2, "F1", "E1", domain.ActionStop, t0.Add(time.Minute)),
	}

	for i := 0; i < 2; i++ {
		r := ResolveStop(log, "F1", "E1")
		assert.Equal(t, StopNotActive, r.Outcome)
	}
}

func TestResolveStop_PassThrough(t *testing.T) {
	log := []domain.ManhourEvent{
		evt(1, "F1", "E1", domain.ActionStart, t0),
		evt(2, "F1", "E2", domain.ActionStart, t0.Add(time.Minute)),
	}

	r := ResolveStop(log, "F1", "E1")
	assert.Equal(t, StopPassThrough, r.Outcome)
	assert.Equal(t, "E1", r.Session.EmployeeID)
	require.Len(t, r.Others, 1)
	assert.Equal(t, "E2", r.Others[0].EmployeeID)
}

func TestResolveStop_LastWorkerRequiresFinalStatus(t *testing.T) {
	log := []domain.ManhourEvent{evt(1, "F1", "E1", domain.ActionStart, t0)}

	r := ResolveStop(log, "F1", "E1")
	assert.Equal(t, StopRequiresFinalStatus, r.Outcome)
	assert.Equal(t, "E1", r.Session.EmployeeID)
	assert.Empty(t, r.Others)
}

func TestPassThroughStop_Duration(t *testing.T) {
	session := domain.ActiveSession{FindingID: "F1", EmployeeID: "E1", StartedAt: t0}

	rec := PassThroughStop(session, t0.Add(90*time.Second))
	assert.Equal(t, domain.FindingInProgress, rec.Status)
	assert.Equal(t, 90, rec.DurationSecs)
	assert.False(t, rec.EvidencePresent())
}

func TestFinalize_ClosedWithoutEvidence(t *testing.T) {
	session := domain.ActiveSession{FindingID: "F1", EmployeeID: "E1", StartedAt: t0}

	_, err := Finalize(session, domain.FindingClosed, t0.Add(time.Minute), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEvidenceRequired)
}

func TestFinalize_ClosedWithEvidence(t *testing.T) {
	session := domain.ActiveSession{FindingID: "F1", EmployeeID: "E1", StartedAt: t0}

	rec, err := Finalize(session, domain.FindingClosed, t0.Add(time.Minute), []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, domain.FindingClosed, rec.Status)
	assert.Equal(t, 60, rec.DurationSecs)
	assert.True(t, rec.EvidencePresent())
}

func TestFinalize_NonClosedNeedsNoEvidence(t *testing.T) {
	session := domain.ActiveSession{FindingID: "F1", EmployeeID: "E1", StartedAt: t0}

	for _, status := range []domain.FindingStatus{domain.FindingInProgress, domain.FindingOnHold} {
		rec, err := Finalize(session, status, t0.Add(time.Minute), nil)
		require.NoError(t, err, "status=%s", status)
		assert.Equal(t, status, rec.Status)
	}
}

func TestFinalize_InvalidStatus(t *testing.T) {
	session := domain.ActiveSession{FindingID: "F1", EmployeeID: "E1", StartedAt: t0}

	_, err := Finalize(session, domain.FindingOpen, t0.Add(time.Minute), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = Finalize(session, domain.FindingStatus("DONE"), t0.Add(time.Minute), nil)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
