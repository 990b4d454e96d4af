package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rgaitan/wotrack/internal/domain"
)

var woCounter atomic.Int64

// Work order options
type WorkOrderOption func(*domain.WorkOrder)

func WithReg(reg string) WorkOrderOption {
	return func(wo *domain.WorkOrder) {
		wo.Reg = reg
	}
}

func WithCustomer(c string) WorkOrderOption {
	return func(wo *domain.WorkOrder) {
		wo.Customer = c
	}
}

func NewTestWorkOrder(opts ...WorkOrderOption) *domain.WorkOrder {
	n := woCounter.Add(1)
	wo := &domain.WorkOrder{
		ID:        uuid.New().String(),
		WONo:      fmt.Sprintf("WO-%04d", n),
		Reg:       "PK-TST",
		Customer:  "Test Air",
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(wo)
	}
	return wo
}

// Finding options
type FindingOption func(*domain.Finding)

func WithFindingStatus(s domain.FindingStatus) FindingOption {
	return func(f *domain.Finding) {
		f.Status = s
	}
}

func WithActionGiven(a string) FindingOption {
	return func(f *domain.Finding) {
		f.ActionGiven = a
	}
}

func NewTestFinding(workOrderID, findingNo string, opts ...FindingOption) *domain.Finding {
	now := time.Now().UTC()
	f := &domain.Finding{
		ID:          uuid.New().String(),
		WorkOrderID: workOrderID,
		FindingNo:   findingNo,
		Description: "Corrosion found on panel " + findingNo,
		Status:      domain.FindingOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Material options
type MaterialOption func(*domain.Material)

func WithAvailability(avail bool) MaterialOption {
	return func(m *domain.Material) {
		m.Available = avail
	}
}

func NewTestMaterial(findingID, partNumber string, opts ...MaterialOption) *domain.Material {
	m := &domain.Material{
		ID:          uuid.New().String(),
		FindingID:   findingID,
		PartNumber:  partNumber,
		Description: "Part " + partNumber,
		Qty:         1,
		Unit:        "EA",
		Available:   true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Event options
type EventOption func(*domain.ManhourEvent)

func WithTimestamp(ts time.Time) EventOption {
	return func(e *domain.ManhourEvent) {
		e.Timestamp = ts
	}
}

func WithTaskCode(code string) EventOption {
	return func(e *domain.ManhourEvent) {
		e.TaskCode = code
	}
}

func WithStopPayload(status domain.FindingStatus, durationSecs int, evidence []byte) EventOption {
	return func(e *domain.ManhourEvent) {
		e.FinalStatus = &status
		e.DurationSecs = &durationSecs
		e.Evidence = evidence
	}
}

func NewTestEvent(workOrderID, findingID, employeeID string, action domain.EventAction, opts ...EventOption) *domain.ManhourEvent {
	e := &domain.ManhourEvent{
		ID:          uuid.New().String(),
		WorkOrderID: workOrderID,
		FindingID:   findingID,
		EmployeeID:  employeeID,
		TaskCode:    "MNT",
		Action:      action,
		Timestamp:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
