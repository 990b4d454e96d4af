package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgaitan/wotrack/internal/db"
	"github.com/rgaitan/wotrack/internal/domain"
	"github.com/rgaitan/wotrack/internal/engine"
	"github.com/rgaitan/wotrack/internal/repository"
)

type manhourService struct {
	events   repository.EventRepo
	findings repository.FindingRepo
	uow      db.UnitOfWork
	now      func() time.Time
}

func NewManhourService(events repository.EventRepo, findings repository.FindingRepo, uow db.UnitOfWork) ManhourService {
	return &manhourService{
		events:   events,
		findings: findings,
		uow:      uow,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *manhourService) RequestStart(ctx context.Context, findingID, employeeID, taskCode string) (StartResult, error) {
	return s.start(ctx, findingID, employeeID, taskCode, false)
}

func (s *manhourService) ConfirmStart(ctx context.Context, findingID, employeeID, taskCode string) (StartResult, error) {
	return s.start(ctx, findingID, employeeID, taskCode, true)
}

// start derives, decides, and appends in one transaction so a concurrent
// client cannot slip a conflicting event between the read and the write.
func (s *manhourService) start(ctx context.Context, findingID, employeeID, taskCode string, confirmed bool) (StartResult, error) {
	employeeID = strings.TrimSpace(employeeID)
	taskCode = strings.TrimSpace(taskCode)
	if employeeID == "" || taskCode == "" {
		return StartResult{}, ErrMissingInput
	}

	var result StartResult
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txFindings := repository.NewSQLiteFindingRepo(tx)
		txEvents := repository.NewSQLiteEventRepo(tx)

		finding, err := txFindings.GetByID(ctx, findingID)
		if err != nil {
			return err
		}

		log, err := txEvents.ListByFinding(ctx, findingID)
		if err != nil {
			return err
		}

		result.Decision = engine.DecideStart(log, findingID, employeeID)
		switch result.Decision.Outcome {
		case engine.StartAlreadyActive:
			return nil
		case engine.StartConflict:
			if !confirmed {
				return nil
			}
		}

		woLog, err := txEvents.ListByWorkOrder(ctx, finding.WorkOrderID)
		if err != nil {
			return err
		}
		if elsewhere, active := engine.IsActiveAnywhere(woLog, employeeID); active && elsewhere != findingID {
			result.ElsewhereFinding = elsewhere
		}

		if err := txEvents.Append(ctx, &domain.ManhourEvent{
			ID:          uuid.New().String(),
			WorkOrderID: finding.WorkOrderID,
			FindingID:   findingID,
			EmployeeID:  employeeID,
			TaskCode:    taskCode,
			Action:      domain.ActionStart,
			Timestamp:   s.now(),
		}); err != nil {
			return err
		}
		result.Started = true
		return nil
	})
	if err != nil {
		return StartResult{}, err
	}
	return result, nil
}

func (s *manhourService) PromptStop(ctx context.Context, findingID string) (engine.StopPrompt, error) {
	log, err := s.events.ListByFinding(ctx, findingID)
	if err != nil {
		return engine.StopPrompt{}, err
	}
	return engine.PromptStop(log, findingID), nil
}

func (s *manhourService) ResolveStop(ctx context.Context, findingID, employeeID string) (StopResult, error) {
	var result StopResult
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txFindings := repository.NewSQLiteFindingRepo(tx)
		txEvents := repository.NewSQLiteEventRepo(tx)

		finding, err := txFindings.GetByID(ctx, findingID)
		if err != nil {
			return err
		}

		log, err := txEvents.ListByFinding(ctx, findingID)
		if err != nil {
			return err
		}

		result.Resolution = engine.ResolveStop(log, findingID, employeeID)
		if result.Resolution.Outcome != engine.StopPassThrough {
			// NotActive and RequiresFinalStatus append nothing here.
			return nil
		}

		stoppedAt := s.now()
		record := engine.PassThroughStop(result.Resolution.Session, stoppedAt)
		if err := appendStop(ctx, txEvents, finding, result.Resolution.Session, record, stoppedAt); err != nil {
			return err
		}
		result.Stopped = true
		result.Record = &record
		return nil
	})
	if err != nil {
		return StopResult{}, err
	}
	return result, nil
}

func (s *manhourService) FinalizeStop(ctx context.Context, findingID, employeeID string, status domain.FindingStatus, evidence []byte) (domain.StopRecord, error) {
	var record domain.StopRecord
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txFindings := repository.NewSQLiteFindingRepo(tx)
		txEvents := repository.NewSQLiteEventRepo(tx)

		finding, err := txFindings.GetByID(ctx, findingID)
		if err != nil {
			return err
		}

		log, err := txEvents.ListByFinding(ctx, findingID)
		if err != nil {
			return err
		}

		// Re-resolve inside the transaction: the pending finalization may
		// have been answered long after the prompt, and the world may have
		// moved on.
		resolution := engine.ResolveStop(log, findingID, employeeID)
		switch resolution.Outcome {
		case engine.StopNotActive:
			return ErrNotActive
		case engine.StopPassThrough:
			return ErrNotLastWorker
		}

		stoppedAt := s.now()
		record, err = engine.Finalize(resolution.Session, status, stoppedAt, evidence)
		if err != nil {
			return err
		}

		if err := appendStop(ctx, txEvents, finding, resolution.Session, record, stoppedAt); err != nil {
			return err
		}

		if err := finding.ApplyFinal(status, stoppedAt); err != nil {
			return err
		}
		return txFindings.UpdateStatus(ctx, finding)
	})
	if err != nil {
		return domain.StopRecord{}, err
	}
	return record, nil
}

func appendStop(ctx context.Context, events repository.EventRepo, finding *domain.Finding, session domain.ActiveSession, record domain.StopRecord, stoppedAt time.Time) error {
	status := record.Status
	duration := record.DurationSecs
	return events.Append(ctx, &domain.ManhourEvent{
		ID:           uuid.New().String(),
		WorkOrderID:  finding.WorkOrderID,
		FindingID:    finding.ID,
		EmployeeID:   session.EmployeeID,
		TaskCode:     session.TaskCode,
		Action:       domain.ActionStop,
		Timestamp:    stoppedAt,
		FinalStatus:  &status,
		DurationSecs: &duration,
		Evidence:     record.Evidence,
	})
}

func (s *manhourService) ActiveSessions(ctx context.Context, findingID string) ([]domain.ActiveSession, error) {
	log, err := s.events.ListByFinding(ctx, findingID)
	if err != nil {
		return nil, err
	}
	return engine.ActiveSessions(log, findingID), nil
}

func (s *manhourService) ActiveByWorkOrder(ctx context.Context, workOrderID string) (map[string][]domain.ActiveSession, error) {
	log, err := s.events.ListByWorkOrder(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	return engine.ActiveByFinding(log), nil
}
