package commitments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shadowbtc/shadowvault/internal/common"
	"github.com/shadowbtc/shadowvault/internal/dbx"
	"github.com/shadowbtc/shadowvault/internal/server/models"
)

// SQLiteRepository implements Repository for the embedded SQLite backend.
// Timestamps are stored as Unix nanoseconds. SQLite has no row locks; the
// ledger's writer mutex and the single connection serialise writers.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, c *models.Commitment) error {
	query := `INSERT INTO commitments (id, hash, amount, created_at, spent) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, c.ID, c.Hash, c.Amount, c.CreatedAt.UnixNano(), c.Spent)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetForUpdate(ctx context.Context, id string) (*models.Commitment, error) {
	query := `SELECT id, hash, amount, created_at, spent FROM commitments WHERE id = ?`

	var (
		c  models.Commitment
		ts int64
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Hash, &c.Amount, &ts, &c.Spent)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	c.CreatedAt = time.Unix(0, ts).UTC()
	return &c, nil
}

func (r *SQLiteRepository) MarkSpent(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE commitments SET spent = 1 WHERE id = ? AND spent = 0`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrAlreadySpent
	}
	return nil
}

func (r *SQLiteRepository) ListUnspent(ctx context.Context) ([]*models.Commitment, error) {
	return r.list(ctx, `SELECT id, hash, amount, created_at, spent FROM commitments
		WHERE spent = 0 ORDER BY created_at, id`)
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]*models.Commitment, error) {
	return r.list(ctx, `SELECT id, hash, amount, created_at, spent FROM commitments ORDER BY created_at, id`)
}

func (r *SQLiteRepository) list(ctx context.Context, query string) ([]*models.Commitment, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select commitments: %w", err)
	}
	defer rows.Close()

	var result []*models.Commitment
	for rows.Next() {
		var (
			c  models.Commitment
			ts int64
		)
		if err := rows.Scan(&c.ID, &c.Hash, &c.Amount, &ts, &c.Spent); err != nil {
			return nil, err
		}
		c.CreatedAt = time.Unix(0, ts).UTC()
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Totals(ctx context.Context) (Totals, error) {
	query := `SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN spent = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN spent = 0 THEN amount ELSE 0 END), 0.0)
		FROM commitments`

	var t Totals
	if err := r.db.QueryRowContext(ctx, query).Scan(&t.Count, &t.Unspent, &t.TVL); err != nil {
		return Totals{}, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM commitments`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
