package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgaitan/wotrack/internal/domain"
	"github.com/rgaitan/wotrack/internal/engine"
	"github.com/rgaitan/wotrack/internal/repository"
	"github.com/rgaitan/wotrack/internal/testutil"
)

type manhourFixture struct {
	svc      *manhourService
	events   repository.EventRepo
	findings repository.FindingRepo
	wo       *domain.WorkOrder
	finding  *domain.Finding
	clock    *time.Time
}

func newManhourFixture(t *testing.T) *manhourFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	workOrders := repository.NewSQLiteWorkOrderRepo(database)
	findings := repository.NewSQLiteFindingRepo(database)
	events := repository.NewSQLiteEventRepo(database)

	wo := testutil.NewTestWorkOrder()
	require.NoError(t, workOrders.Create(ctx, wo))
	finding := testutil.NewTestFinding(wo.ID, "F-001")
	require.NoError(t, findings.Create(ctx, finding))

	clock := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := NewManhourService(events, findings, testutil.NewTestUoW(database)).(*manhourService)
	svc.now = func() time.Time { return clock }

	return &manhourFixture{
		svc:      svc,
		events:   events,
		findings: findings,
		wo:       wo,
		finding:  finding,
		clock:    &clock,
	}
}

func (fx *manhourFixture) advance(d time.Duration) {
	*fx.clock = fx.clock.Add(d)
}

func TestManhourService_RequestStart_Proceed(t *testing.T) {
	fx := newManhourFixture(t)
	ctx := context.Background()

	result, err := fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-1", "MNT")
	require.NoError(t, err)
	assert.Equal(t, engine.StartProceed, result.Decision.Outcome)
	assert.True(t, result.Started)

	log, err := fx.events.ListByFinding(ctx, fx.finding.ID)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, domain.ActionStart, log[0].Action)
	assert.Equal(t, "EMP-1", log[0].EmployeeID)
}

func TestManhourService_RequestStart_MissingInput(t *testing.T) {
	fx := newManhourFixture(t)
	ctx := context.Background()

	_, err := fx.svc.RequestStart(ctx, fx.finding.ID, "  ", "MNT")
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-1", "")
	assert.ErrorIs(t, err, ErrMissingInput)

	log, err := fx.events.ListByFinding(ctx, fx.finding.ID)
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestManhourService_RequestStart_AlreadyActive(t *testing.T) {
	fx := newManhourFixture(t)
	ctx := context.Background()

	_, err := fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-1", "MNT")
	require.NoError(t, err)

	result, err := fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-1", "MNT")
	require.NoError(t, err)
	assert.Equal(t, engine.StartAlreadyActive, result.Decision.Outcome)
	assert.False(t, result.Started)

	// The log must be unchanged.
	log, err := fx.events.ListByFinding(ctx, fx.finding.ID)
	require.NoError(t, err)
	assert.Len(t, log, 1)
}

func TestManhourService_RequestStart_ConflictRequiresConfirmation(t *testing.T) {
	fx := newManhourFixture(t)
	ctx := context.Background()

	_, err := fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-1", "MNT")
	require.NoError(t, err)

	result, err := fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-2", "INSP")
	require.NoError(t, err)
	assert.Equal(t, engine.StartConflict, result.Decision.Outcome)
	assert.False(t, result.Started)
	require.Len(t, result.Decision.ActiveOthers, 1)
	assert.Equal(t, "EMP-1", result.Decision.ActiveOthers[0].EmployeeID)

	confirmed, err := fx.svc.ConfirmStart(ctx, fx.finding.ID, "EMP-2", "INSP")
	require.NoError(t, err)
	assert.Equal(t, engine.StartConflict, confirmed.Decision.Outcome)
	assert.True(t, confirmed.Started)

	log, err := fx.events.ListByFinding(ctx, fx.finding.ID)
	require.NoError(t, err)
	assert.Len(t, log, 2)
}

func TestManhourService_RequestStart_FlagsEmployeeActiveElsewhere(t *testing.T) {
	fx := newManhourFixture(t)
	ctx := context.Background()

	other := testutil.NewTestFinding(fx.wo.ID, "F-002")
	require.NoError(t, fx.findings.Create(ctx, other))

	_, err := fx.svc.RequestStart(ctx, other.ID, "EMP-1", "MNT")
	require.NoError(t, err)

	result, err := fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-1", "MNT")
	require.NoError(t, err)
	assert.True(t, result.Started)
	assert.Equal(t, other.ID, result.ElsewhereFinding)
}

func TestManhourService_ResolveStop_NotActive(t *testing.T) {
	fx := newManhourFixture(t)
	ctx := context.Background()

	result, err := fx.svc.ResolveStop(ctx, fx.finding.ID, "EMP-1")
	require.NoError(t, err)
	assert.Equal(t, engine.StopNotActive, result.Resolution.Outcome)
	assert.False(t, result.Stopped)
}

func TestManhourService_ResolveStop_PassThrough(t *testing.T) {
	fx := newManhourFixture(t)
	ctx := context.Background()

	_, err := fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-1", "MNT")
	require.NoError(t, err)
	_, err = fx.svc.ConfirmStart(ctx, fx.finding.ID, "EMP-2", "INSP")
	require.NoError(t, err)

	fx.advance(90 * time.Second)

	result, err := fx.svc.ResolveStop(ctx, fx.finding.ID, "EMP-1")
	require.NoError(t, err)
	assert.Equal(t, engine.StopPassThrough, result.Resolution.Outcome)
	assert.True(t, result.Stopped)
	require.NotNil(t, result.Record)
	assert.Equal(t, domain.FindingInProgress, result.Record.Status)
	assert.Equal(t, 90, result.Record.DurationSecs)

	// Finding status is untouched by a pass-through stop.
	finding, err := fx.findings.GetByID(ctx, fx.finding.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FindingOpen, finding.Status)

	// EMP-2 is still active.
	sessions, err := fx.svc.ActiveSessions(ctx, fx.finding.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "EMP-2", sessions[0].EmployeeID)
}

func TestManhourService_ResolveStop_LastWorkerRequiresFinalStatus(t *testing.T) {
	fx := newManhourFixture(t)
	ctx := context.Background()

	_, err := fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-1", "MNT")
	require.NoError(t, err)

	result, err := fx.svc.ResolveStop(ctx, fx.finding.ID, "EMP-1")
	require.NoError(t, err)
	assert.Equal(t, engine.StopRequiresFinalStatus, result.Resolution.Outcome)
	assert.False(t, result.Stopped)

	// Nothing was appended; the session is still open.
	log, err := fx.events.ListByFinding(ctx, fx.finding.ID)
	require.NoError(t, err)
	assert.Len(t, log, 1)
}

func TestManhourService_FinalizeStop_Closed(t *testing.T) {
	fx := newManhourFixture(t)
	ctx := context.Background()

	_, err := fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-1", "MNT")
	require.NoError(t, err)

	fx.advance(3661 * time.Second)

	evidence := []byte("stamped job card")
	record, err := fx.svc.FinalizeStop(ctx, fx.finding.ID, "EMP-1", domain.FindingClosed, evidence)
	require.NoError(t, err)
	assert.Equal(t, domain.FindingClosed, record.Status)
	assert.Equal(t, 3661, record.DurationSecs)
	assert.Equal(t, evidence, record.Evidence)

	finding, err := fx.findings.GetByID(ctx, fx.finding.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FindingClosed, finding.Status)

	log, err := fx.events.ListByFinding(ctx, fx.finding.ID)
	require.NoError(t, err)
	require.Len(t, log, 2)
	stop := log[1]
	assert.Equal(t, domain.ActionStop, stop.Action)
	require.NotNil(t, stop.FinalStatus)
	assert.Equal(t, domain.FindingClosed, *stop.FinalStatus)
	require.NotNil(t, stop.DurationSecs)
	assert.Equal(t, 3661, *stop.DurationSecs)
	assert.Equal(t, evidence, stop.Evidence)
}

func TestManhourService_FinalizeStop_OnHoldWithoutEvidence(t *testing.T) {
	fx := newManhourFixture(t)
	ctx := context.Background()

	_, err := fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-1", "MNT")
	require.NoError(t, err)

	_, err = fx.svc.FinalizeStop(ctx, fx.finding.ID, "EMP-1", domain.FindingOnHold, nil)
	require.NoError(t, err)

	finding, err := fx.findings.GetByID(ctx, fx.finding.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FindingOnHold, finding.Status)
}

func TestManhourService_FinalizeStop_ClosedWithoutEvidence(t *testing.T) {
	fx := newManhourFixture(t)
	ctx := context.Background()

	_, err := fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-1", "MNT")
	require.NoError(t, err)

	_, err = fx.svc.FinalizeStop(ctx, fx.finding.ID, "EMP-1", domain.FindingClosed, nil)
	assert.ErrorIs(t, err, engine.ErrEvidenceRequired)

	// The transaction rolled back: no STOP event, status unchanged.
	log, err := fx.events.ListByFinding(ctx, fx.finding.ID)
	require.NoError(t, err)
	assert.Len(t, log, 1)

	finding, err := fx.findings.GetByID(ctx, fx.finding.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FindingOpen, finding.Status)
}

func TestManhourService_StartAfterClose_CanFinalize(t *testing.T) {
	fx := newManhourFixture(t)
	ctx := context.Background()

	_, err := fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-1", "MNT")
	require.NoError(t, err)
	_, err = fx.svc.FinalizeStop(ctx, fx.finding.ID, "EMP-1", domain.FindingClosed, []byte("job card"))
	require.NoError(t, err)

	// Rework on a closed finding starts a fresh session.
	result, err := fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-2", "INSP")
	require.NoError(t, err)
	assert.True(t, result.Started)

	fx.advance(120 * time.Second)

	record, err := fx.svc.FinalizeStop(ctx, fx.finding.ID, "EMP-2", domain.FindingInProgress, nil)
	require.NoError(t, err)
	assert.Equal(t, 120, record.DurationSecs)

	finding, err := fx.findings.GetByID(ctx, fx.finding.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FindingInProgress, finding.Status)

	sessions, err := fx.svc.ActiveSessions(ctx, fx.finding.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestManhourService_StartAfterClose_CanReclose(t *testing.T) {
	fx := newManhourFixture(t)
	ctx := context.Background()

	_, err := fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-1", "MNT")
	require.NoError(t, err)
	_, err = fx.svc.FinalizeStop(ctx, fx.finding.ID, "EMP-1", domain.FindingClosed, []byte("first run"))
	require.NoError(t, err)

	_, err = fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-1", "MNT")
	require.NoError(t, err)

	record, err := fx.svc.FinalizeStop(ctx, fx.finding.ID, "EMP-1", domain.FindingClosed, []byte("second run"))
	require.NoError(t, err)
	assert.Equal(t, domain.FindingClosed, record.Status)

	finding, err := fx.findings.GetByID(ctx, fx.finding.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FindingClosed, finding.Status)
}

func TestManhourService_FinalizeStop_NotActive(t *testing.T) {
	fx := newManhourFixture(t)
	ctx := context.Background()

	_, err := fx.svc.FinalizeStop(ctx, fx.finding.ID, "EMP-1", domain.FindingClosed, []byte("x"))
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestManhourService_FinalizeStop_NotLastWorker(t *testing.T) {
	fx := newManhourFixture(t)
	ctx := context.Background()

	_, err := fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-1", "MNT")
	require.NoError(t, err)
	_, err = fx.svc.ConfirmStart(ctx, fx.finding.ID, "EMP-2", "INSP")
	require.NoError(t, err)

	// A second worker joined after the stop prompt; the finalization no
	// longer applies.
	_, err = fx.svc.FinalizeStop(ctx, fx.finding.ID, "EMP-1", domain.FindingClosed, []byte("x"))
	assert.ErrorIs(t, err, ErrNotLastWorker)

	log, err := fx.events.ListByFinding(ctx, fx.finding.ID)
	require.NoError(t, err)
	assert.Len(t, log, 2)
}

func TestManhourService_PromptStop(t *testing.T) {
	fx := newManhourFixture(t)
	ctx := context.Background()

	prompt, err := fx.svc.PromptStop(ctx, fx.finding.ID)
	require.NoError(t, err)
	assert.Equal(t, engine.StopNoActiveSessions, prompt.Outcome)

	_, err = fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-1", "MNT")
	require.NoError(t, err)

	prompt, err = fx.svc.PromptStop(ctx, fx.finding.ID)
	require.NoError(t, err)
	assert.Equal(t, engine.StopSingleCandidate, prompt.Outcome)
	require.Len(t, prompt.Candidates, 1)
	assert.Equal(t, "EMP-1", prompt.Candidates[0].EmployeeID)

	_, err = fx.svc.ConfirmStart(ctx, fx.finding.ID, "EMP-2", "INSP")
	require.NoError(t, err)

	prompt, err = fx.svc.PromptStop(ctx, fx.finding.ID)
	require.NoError(t, err)
	assert.Equal(t, engine.StopSelectCandidate, prompt.Outcome)
	assert.Len(t, prompt.Candidates, 2)
}

func TestManhourService_ActiveByWorkOrder(t *testing.T) {
	fx := newManhourFixture(t)
	ctx := context.Background()

	other := testutil.NewTestFinding(fx.wo.ID, "F-002")
	require.NoError(t, fx.findings.Create(ctx, other))

	_, err := fx.svc.RequestStart(ctx, fx.finding.ID, "EMP-1", "MNT")
	require.NoError(t, err)
	_, err = fx.svc.RequestStart(ctx, other.ID, "EMP-2", "MNT")
	require.NoError(t, err)

	active, err := fx.svc.ActiveByWorkOrder(ctx, fx.wo.ID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Len(t, active[fx.finding.ID], 1)
	assert.Len(t, active[other.ID], 1)
}
