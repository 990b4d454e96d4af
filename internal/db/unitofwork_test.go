package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uowTestDB(t *testing.T) (*SQLiteUnitOfWork, func(t *testing.T) int) {
	t.Helper()
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	countOrders := func(t *testing.T) int {
		t.Helper()
		var n int
		require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM work_orders`).Scan(&n))
		return n
	}
	return NewSQLiteUnitOfWork(database), countOrders
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	uow, countOrders := uowTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO work_orders (id, wo_no, created_at) VALUES ('w1', 'WO-1', '2026-03-10T00:00:00Z')`)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countOrders(t))
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	uow, countOrders := uowTestDB(t)
	boom := errors.New("boom")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO work_orders (id, wo_no, created_at) VALUES ('w1', 'WO-1', '2026-03-10T00:00:00Z')`); err != nil {
			return err
		}
		return boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countOrders(t), "insert must be rolled back")
}
