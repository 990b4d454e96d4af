package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rgaitan/wotrack/internal/db"
	"github.com/rgaitan/wotrack/internal/domain"
)

// SQLiteEventRepo implements EventRepo using a SQLite database. The table is
// insert-only; derivation code re-reads the log rather than mutating rows.
type SQLiteEventRepo struct {
	db db.DBTX
}

// NewSQLiteEventRepo creates a new SQLiteEventRepo.
func NewSQLiteEventRepo(dbtx db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: dbtx}
}

const eventColumns = `seq, id, work_order_id, finding_id, employee_id, task_code, action, timestamp,
		final_status, duration_secs, evidence`

// Append inserts one event and assigns its store sequence number, the
// tiebreaker for same-timestamp events.
func (r *SQLiteEventRepo) Append(ctx context.Context, e *domain.ManhourEvent) error {
	query := `INSERT INTO manhour_events (id, work_order_id, finding_id, employee_id, task_code, action, timestamp,
		final_status, duration_secs, evidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var finalStatus interface{}
	if e.FinalStatus != nil {
		finalStatus = string(*e.FinalStatus)
	}

	res, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.WorkOrderID,
		e.FindingID,
		e.EmployeeID,
		e.TaskCode,
		string(e.Action),
		formatTime(e.Timestamp),
		finalStatus,
		nullableIntToValue(e.DurationSecs),
		e.Evidence,
	)
	if err != nil {
		return fmt.Errorf("appending manhour event: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading event seq: %w", err)
	}
	e.Seq = seq
	return nil
}

func (r *SQLiteEventRepo) ListByFinding(ctx context.Context, findingID string) ([]domain.ManhourEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM manhour_events WHERE finding_id = ? ORDER BY timestamp, seq`
	rows, err := r.db.QueryContext(ctx, query, findingID)
	if err != nil {
		return nil, fmt.Errorf("listing events by finding: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

func (r *SQLiteEventRepo) ListByWorkOrder(ctx context.Context, workOrderID string) ([]domain.ManhourEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM manhour_events WHERE work_order_id = ? ORDER BY timestamp, seq`
	rows, err := r.db.QueryContext(ctx, query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("listing events by work order: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

func (r *SQLiteEventRepo) scanEvents(rows *sql.Rows) ([]domain.ManhourEvent, error) {
	var events []domain.ManhourEvent
	for rows.Next() {
		var e domain.ManhourEvent
		var action, timestampStr string
		var finalStatus sql.NullString
		var durationSecs sql.NullInt64

		err := rows.Scan(&e.Seq, &e.ID, &e.WorkOrderID, &e.FindingID, &e.EmployeeID, &e.TaskCode,
			&action, &timestampStr, &finalStatus, &durationSecs, &e.Evidence)
		if err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}

		e.Action = domain.EventAction(action)
		if e.Timestamp, err = parseTime(timestampStr); err != nil {
			return nil, fmt.Errorf("parsing event timestamp: %w", err)
		}
		if s := nullableString(finalStatus); s != nil {
			status := domain.FindingStatus(*s)
			e.FinalStatus = &status
		}
		if durationSecs.Valid {
			d := int(durationSecs.Int64)
			e.DurationSecs = &d
		}

		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}
