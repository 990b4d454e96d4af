package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rgaitan/wotrack/internal/db"
	"github.com/rgaitan/wotrack/internal/importer"
	"github.com/rgaitan/wotrack/internal/repository"
)

type importService struct {
	workOrders repository.WorkOrderRepo
	uow        db.UnitOfWork
}

func NewImportService(workOrders repository.WorkOrderRepo, uow db.UnitOfWork) ImportService {
	return &importService{workOrders: workOrders, uow: uow}
}

func (s *importService) ImportWorkOrder(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}

	if _, err := s.workOrders.GetByWONo(ctx, schema.WorkOrder.WONo); err == nil {
		return nil, fmt.Errorf("work order %s already exists", schema.WorkOrder.WONo)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	converted := importer.Convert(schema, time.Now().UTC())

	// All-or-nothing: a failed finding or material insert rolls the whole
	// catalog back.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txWorkOrders := repository.NewSQLiteWorkOrderRepo(tx)
		txFindings := repository.NewSQLiteFindingRepo(tx)
		txMaterials := repository.NewSQLiteMaterialRepo(tx)

		if err := txWorkOrders.Create(ctx, converted.WorkOrder); err != nil {
			return err
		}
		for _, f := range converted.Findings {
			if err := txFindings.Create(ctx, f); err != nil {
				return err
			}
		}
		for _, m := range converted.Materials {
			if err := txMaterials.Create(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		WorkOrder:     converted.WorkOrder,
		FindingCount:  len(converted.Findings),
		MaterialCount: len(converted.Materials),
	}, nil
}
