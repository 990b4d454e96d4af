package service

import (
	"context"
	"errors"

	"github.com/rgaitan/wotrack/internal/domain"
	"github.com/rgaitan/wotrack/internal/engine"
)

var (
	// ErrMissingInput is returned before any log interaction when the
	// employee id or task code is blank.
	ErrMissingInput = errors.New("employee id and task code are required")
	// ErrNotActive is returned when a stop is finalized for an employee with
	// no open session. The log is left untouched.
	ErrNotActive = errors.New("employee is not currently active on this finding")
	// ErrNotLastWorker is returned when a finalization races another start:
	// by the time the transaction ran, other workers were active again.
	ErrNotLastWorker = errors.New("other employees are still active on this finding")
)

// StartResult pairs the conflict-policy decision with whether a START event
// was actually appended.
type StartResult struct {
	Decision engine.StartDecision
	Started  bool
	// ElsewhereFinding is set when the employee already holds an open session
	// on another finding of the same work order. Informational only.
	ElsewhereFinding string
}

// StopResult pairs the stop-machine resolution with the appended payload, if
// any. Record is nil unless Stopped.
type StopResult struct {
	Resolution engine.StopResolution
	Stopped    bool
	Record     *domain.StopRecord
}

type ManhourService interface {
	// RequestStart runs the conflict policy and appends the START only on a
	// clean Proceed. Conflict and AlreadyActive append nothing.
	RequestStart(ctx context.Context, findingID, employeeID, taskCode string) (StartResult, error)
	// ConfirmStart appends the START after the caller confirmed a conflict.
	// AlreadyActive is still rejected.
	ConfirmStart(ctx context.Context, findingID, employeeID, taskCode string) (StartResult, error)
	// PromptStop reports who could be stopped on the finding.
	PromptStop(ctx context.Context, findingID string) (engine.StopPrompt, error)
	// ResolveStop stops the chosen employee when others remain active
	// (pass-through). When they are the last worker nothing is appended and
	// the resolution asks for a final status.
	ResolveStop(ctx context.Context, findingID, employeeID string) (StopResult, error)
	// FinalizeStop performs the last-worker stop: appends the STOP with the
	// chosen status and updates the finding. CLOSED requires evidence.
	FinalizeStop(ctx context.Context, findingID, employeeID string, status domain.FindingStatus, evidence []byte) (domain.StopRecord, error)

	ActiveSessions(ctx context.Context, findingID string) ([]domain.ActiveSession, error)
	ActiveByWorkOrder(ctx context.Context, workOrderID string) (map[string][]domain.ActiveSession, error)
}

// WorkOrderView is the read-only catalog snapshot handed to presentation.
type WorkOrderView struct {
	Info      *domain.WorkOrder
	Findings  []*domain.Finding
	Materials []*domain.Material
}

type WorkOrderService interface {
	Get(ctx context.Context, woNo string) (*WorkOrderView, error)
	List(ctx context.Context) ([]*domain.WorkOrder, error)
	ResolveFinding(ctx context.Context, woNo, findingNo string) (*domain.Finding, error)
	PerformingLog(ctx context.Context, findingID string) ([]domain.ManhourEvent, error)
}

// ImportResult holds the outcome of a catalog import.
type ImportResult struct {
	WorkOrder     *domain.WorkOrder
	FindingCount  int
	MaterialCount int
}

type ImportService interface {
	ImportWorkOrder(ctx context.Context, filePath string) (*ImportResult, error)
}
