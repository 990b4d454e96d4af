package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rgaitan/wotrack/internal/db"
	"github.com/rgaitan/wotrack/internal/domain"
)

// SQLiteWorkOrderRepo implements WorkOrderRepo using a SQLite database.
type SQLiteWorkOrderRepo struct {
	db db.DBTX
}

// NewSQLiteWorkOrderRepo creates a new SQLiteWorkOrderRepo. It accepts a DBTX
// so the same repository works against the pool or inside a transaction.
func NewSQLiteWorkOrderRepo(dbtx db.DBTX) *SQLiteWorkOrderRepo {
	return &SQLiteWorkOrderRepo{db: dbtx}
}

const workOrderColumns = `id, wo_no, reg, customer, description, pn, sn, created_at`

func (r *SQLiteWorkOrderRepo) Create(ctx context.Context, wo *domain.WorkOrder) error {
	query := `INSERT INTO work_orders (id, wo_no, reg, customer, description, pn, sn, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		wo.ID,
		wo.WONo,
		wo.Reg,
		wo.Customer,
		wo.Description,
		wo.PN,
		wo.SN,
		formatTime(wo.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting work order: %w", err)
	}
	return nil
}

func (r *SQLiteWorkOrderRepo) GetByID(ctx context.Context, id string) (*domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = ?`
	return r.scanWorkOrder(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteWorkOrderRepo) GetByWONo(ctx context.Context, woNo string) (*domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE wo_no = ?`
	return r.scanWorkOrder(r.db.QueryRowContext(ctx, query, woNo))
}

func (r *SQLiteWorkOrderRepo) List(ctx context.Context) ([]*domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders ORDER BY wo_no`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing work orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.WorkOrder
	for rows.Next() {
		var wo domain.WorkOrder
		var createdAtStr string
		if err := rows.Scan(&wo.ID, &wo.WONo, &wo.Reg, &wo.Customer, &wo.Description, &wo.PN, &wo.SN, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning work order row: %w", err)
		}
		if wo.CreatedAt, err = parseTime(createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		orders = append(orders, &wo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work orders: %w", err)
	}
	return orders, nil
}

func (r *SQLiteWorkOrderRepo) scanWorkOrder(row *sql.Row) (*domain.WorkOrder, error) {
	var wo domain.WorkOrder
	var createdAtStr string

	err := row.Scan(&wo.ID, &wo.WONo, &wo.Reg, &wo.Customer, &wo.Description, &wo.PN, &wo.SN, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work order: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work order: %w", err)
	}

	if wo.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &wo, nil
}
