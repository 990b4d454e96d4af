package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rgaitan/wotrack/internal/db"
	"github.com/rgaitan/wotrack/internal/domain"
)

// SQLiteFindingRepo implements FindingRepo using a SQLite database.
type SQLiteFindingRepo struct {
	db db.DBTX
}

// NewSQLiteFindingRepo creates a new SQLiteFindingRepo.
func NewSQLiteFindingRepo(dbtx db.DBTX) *SQLiteFindingRepo {
	return &SQLiteFindingRepo{db: dbtx}
}

const findingColumns = `id, work_order_id, finding_no, description, action_given, image_url, status, created_at, updated_at`

func (r *SQLiteFindingRepo) Create(ctx context.Context, f *domain.Finding) error {
	query := `INSERT INTO findings (id, work_order_id, finding_no, description, action_given, image_url, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		f.WorkOrderID,
		f.FindingNo,
		f.Description,
		f.ActionGiven,
		f.ImageURL,
		string(f.EffectiveStatus()),
		formatTime(f.CreatedAt),
		formatTime(f.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting finding: %w", err)
	}
	return nil
}

func (r *SQLiteFindingRepo) GetByID(ctx context.Context, id string) (*domain.Finding, error) {
	query := `SELECT ` + findingColumns + ` FROM findings WHERE id = ?`
	return r.scanFinding(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteFindingRepo) GetByNo(ctx context.Context, workOrderID, findingNo string) (*domain.Finding, error) {
	query := `SELECT ` + findingColumns + ` FROM findings WHERE work_order_id = ? AND finding_no = ?`
	return r.scanFinding(r.db.QueryRowContext(ctx, query, workOrderID, findingNo))
}

func (r *SQLiteFindingRepo) ListByWorkOrder(ctx context.Context, workOrderID string) ([]*domain.Finding, error) {
	query := `SELECT ` + findingColumns + ` FROM findings WHERE work_order_id = ? ORDER BY finding_no`
	rows, err := r.db.QueryContext(ctx, query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("listing findings: %w", err)
	}
	defer rows.Close()

	var findings []*domain.Finding
	for rows.Next() {
		f, err := r.scanFindingRow(rows)
		if err != nil {
			return nil, err
		}
		findings = append(findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating findings: %w", err)
	}
	return findings, nil
}

func (r *SQLiteFindingRepo) UpdateStatus(ctx context.Context, f *domain.Finding) error {
	query := `UPDATE findings SET status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, string(f.EffectiveStatus()), formatTime(f.UpdatedAt), f.ID)
	if err != nil {
		return fmt.Errorf("updating finding status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking finding update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finding %s: %w", f.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteFindingRepo) scanFinding(row *sql.Row) (*domain.Finding, error) {
	var f domain.Finding
	var status, createdAtStr, updatedAtStr string

	err := row.Scan(&f.ID, &f.WorkOrderID, &f.FindingNo, &f.Description, &f.ActionGiven, &f.ImageURL,
		&status, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("finding: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning finding: %w", err)
	}

	return r.populateFinding(&f, status, createdAtStr, updatedAtStr)
}

func (r *SQLiteFindingRepo) scanFindingRow(rows *sql.Rows) (*domain.Finding, error) {
	var f domain.Finding
	var status, createdAtStr, updatedAtStr string

	err := rows.Scan(&f.ID, &f.WorkOrderID, &f.FindingNo, &f.Description, &f.ActionGiven, &f.ImageURL,
		&status, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning finding row: %w", err)
	}

	return r.populateFinding(&f, status, createdAtStr, updatedAtStr)
}

func (r *SQLiteFindingRepo) populateFinding(f *domain.Finding, status, createdAtStr, updatedAtStr string) (*domain.Finding, error) {
	f.Status = domain.FindingStatus(status)

	var err error
	if f.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if f.UpdatedAt, err = parseTime(updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return f, nil
}
