package service

import (
	"context"

	"github.com/rgaitan/wotrack/internal/domain"
	"github.com/rgaitan/wotrack/internal/repository"
)

type workOrderService struct {
	workOrders repository.WorkOrderRepo
	findings   repository.FindingRepo
	materials  repository.MaterialRepo
	events     repository.EventRepo
}

func NewWorkOrderService(workOrders repository.WorkOrderRepo, findings repository.FindingRepo, materials repository.MaterialRepo, events repository.EventRepo) WorkOrderService {
	return &workOrderService{
		workOrders: workOrders,
		findings:   findings,
		materials:  materials,
		events:     events,
	}
}

func (s *workOrderService) Get(ctx context.Context, woNo string) (*WorkOrderView, error) {
	wo, err := s.workOrders.GetByWONo(ctx, woNo)
	if err != nil {
		return nil, err
	}

	findings, err := s.findings.ListByWorkOrder(ctx, wo.ID)
	if err != nil {
		return nil, err
	}

	materials, err := s.materials.ListByWorkOrder(ctx, wo.ID)
	if err != nil {
		return nil, err
	}

	return &WorkOrderView{Info: wo, Findings: findings, Materials: materials}, nil
}

func (s *workOrderService) List(ctx context.Context) ([]*domain.WorkOrder, error) {
	return s.workOrders.List(ctx)
}

func (s *workOrderService) ResolveFinding(ctx context.Context, woNo, findingNo string) (*domain.Finding, error) {
	wo, err := s.workOrders.GetByWONo(ctx, woNo)
	if err != nil {
		return nil, err
	}
	return s.findings.GetByNo(ctx, wo.ID, findingNo)
}

func (s *workOrderService) PerformingLog(ctx context.Context, findingID string) ([]domain.ManhourEvent, error) {
	return s.events.ListByFinding(ctx, findingID)
}
