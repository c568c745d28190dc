// Package commitments provides the SQL repositories for shielded deposits.
package commitments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shadowbtc/shadowvault/internal/common"
	"github.com/shadowbtc/shadowvault/internal/dbx"
	"github.com/shadowbtc/shadowvault/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Commitment) error {
	query := `INSERT INTO commitments (id, hash, amount, created_at, spent)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, c.ID, c.Hash, c.Amount, c.CreatedAt, c.Spent)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*models.Commitment, error) {
	query := `SELECT id, hash, amount, created_at, spent FROM commitments WHERE id = $1 FOR UPDATE`

	c := &models.Commitment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Hash, &c.Amount, &c.CreatedAt, &c.Spent)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) MarkSpent(ctx context.Context, id string) error {
	query := `UPDATE commitments SET spent = TRUE WHERE id = $1 AND spent = FALSE`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrAlreadySpent
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) ListUnspent(ctx context.Context) ([]*models.Commitment, error) {
	query := `SELECT id, hash, amount, created_at, spent FROM commitments
		WHERE spent = FALSE ORDER BY created_at, id`
	return r.list(ctx, query)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Commitment, error) {
	query := `SELECT id, hash, amount, created_at, spent FROM commitments ORDER BY created_at, id`
	return r.list(ctx, query)
}

func (r *PostgresRepository) list(ctx context.Context, query string) ([]*models.Commitment, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select commitments: %w", err)
	}
	defer rows.Close()

	var result []*models.Commitment
	for rows.Next() {
		var c models.Commitment
		if err := rows.Scan(&c.ID, &c.Hash, &c.Amount, &c.CreatedAt, &c.Spent); err != nil {
			return nil, err
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Totals(ctx context.Context) (Totals, error) {
	query := `SELECT COUNT(*),
			COUNT(*) FILTER (WHERE spent = FALSE),
			COALESCE(SUM(amount) FILTER (WHERE spent = FALSE), 0)
		FROM commitments`

	var t Totals
	if err := r.db.QueryRowContext(ctx, query).Scan(&t.Count, &t.Unspent, &t.TVL); err != nil {
		return Totals{}, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM commitments`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
