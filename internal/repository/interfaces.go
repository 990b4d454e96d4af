package repository

import (
	"context"

	"github.com/rgaitan/wotrack/internal/domain"
)

type WorkOrderRepo interface {
	Create(ctx context.Context, wo *domain.WorkOrder) error
	GetByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	GetByWONo(ctx context.Context, woNo string) (*domain.WorkOrder, error)
	List(ctx context.Context) ([]*domain.WorkOrder, error)
}

type FindingRepo interface {
	Create(ctx context.Context, f *domain.Finding) error
	GetByID(ctx context.Context, id string) (*domain.Finding, error)
	GetByNo(ctx context.Context, workOrderID, findingNo string) (*domain.Finding, error)
	ListByWorkOrder(ctx context.Context, workOrderID string) ([]*domain.Finding, error)
	// UpdateStatus persists a status transition produced by finalization.
	// No other finding column is ever updated after import.
	UpdateStatus(ctx context.Context, f *domain.Finding) error
}

type MaterialRepo interface {
	Create(ctx context.Context, m *domain.Material) error
	ListByFinding(ctx context.Context, findingID string) ([]*domain.Material, error)
	ListByWorkOrder(ctx context.Context, workOrderID string) ([]*domain.Material, error)
}

// EventRepo is the append-only performing log. There is deliberately no
// update or delete operation.
type EventRepo interface {
	Append(ctx context.Context, e *domain.ManhourEvent) error
	ListByFinding(ctx context.Context, findingID string) ([]domain.ManhourEvent, error)
	ListByWorkOrder(ctx context.Context, workOrderID string) ([]domain.ManhourEvent, error)
}
