package nullifiers

import (
	"context"
	"fmt"
	"time"

	"github.com/shadowbtc/shadowvault/internal/common"
	"github.com/shadowbtc/shadowvault/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Exists(ctx context.Context, value string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM nullifiers WHERE value = $1)`, value).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// Insert relies on the primary key: a concurrent transaction inserting the
// same value blocks until the first commits and then affects no rows.
func (r *PostgresRepository) Insert(ctx context.Context, value string, at time.Time) error {
	query := `INSERT INTO nullifiers (value, created_at) VALUES ($1, $2) ON CONFLICT (value) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, value, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrDoubleSpend
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM nullifiers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM nullifiers`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
