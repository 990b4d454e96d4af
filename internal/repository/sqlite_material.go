package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rgaitan/wotrack/internal/db"
	"github.com/rgaitan/wotrack/internal/domain"
)

// SQLiteMaterialRepo implements MaterialRepo using a SQLite database.
type SQLiteMaterialRepo struct {
	db db.DBTX
}

// NewSQLiteMaterialRepo creates a new SQLiteMaterialRepo.
func NewSQLiteMaterialRepo(dbtx db.DBTX) *SQLiteMaterialRepo {
	return &SQLiteMaterialRepo{db: dbtx}
}

func (r *SQLiteMaterialRepo) Create(ctx context.Context, m *domain.Material) error {
	query := `INSERT INTO materials (id, finding_id, part_number, description, qty, unit, available)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.FindingID,
		m.PartNumber,
		m.Description,
		m.Qty,
		m.Unit,
		boolToInt(m.Available),
	)
	if err != nil {
		return fmt.Errorf("inserting material: %w", err)
	}
	return nil
}

func (r *SQLiteMaterialRepo) ListByFinding(ctx context.Context, findingID string) ([]*domain.Material, error) {
	query := `SELECT id, finding_id, part_number, description, qty, unit, available
		FROM materials WHERE finding_id = ? ORDER BY part_number`
	rows, err := r.db.QueryContext(ctx, query, findingID)
	if err != nil {
		return nil, fmt.Errorf("listing materials by finding: %w", err)
	}
	defer rows.Close()
	return r.scanMaterials(rows)
}

func (r *SQLiteMaterialRepo) ListByWorkOrder(ctx context.Context, workOrderID string) ([]*domain.Material, error) {
	query := `SELECT m.id, m.finding_id, m.part_number, m.description, m.qty, m.unit, m.available
		FROM materials m
		JOIN findings f ON m.finding_id = f.id
		WHERE f.work_order_id = ?
		ORDER BY f.finding_no, m.part_number`
	rows, err := r.db.QueryContext(ctx, query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("listing materials by work order: %w", err)
	}
	defer rows.Close()
	return r.scanMaterials(rows)
}

func (r *SQLiteMaterialRepo) scanMaterials(rows *sql.Rows) ([]*domain.Material, error) {
	var materials []*domain.Material
	for rows.Next() {
		var m domain.Material
		var available int
		if err := rows.Scan(&m.ID, &m.FindingID, &m.PartNumber, &m.Description, &m.Qty, &m.Unit, &available); err != nil {
			return nil, fmt.Errorf("scanning material row: %w", err)
		}
		m.Available = intToBool(available)
		materials = append(materials, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating materials: %w", err)
	}
	return materials, nil
}
