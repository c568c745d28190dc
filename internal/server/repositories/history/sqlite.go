package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shadowbtc/shadowvault/internal/dbx"
	"github.com/shadowbtc/shadowvault/internal/server/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, e *models.HistoryEntry) error {
	query := `INSERT INTO history (id, kind, amount, status, commitment_id, address, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Kind, e.Amount, e.Status, nullString(e.CommitmentID), e.Address, e.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListRecent(ctx context.Context, limit int) ([]*models.HistoryEntry, error) {
	return r.list(ctx, `SELECT id, kind, amount, status, commitment_id, address, created_at
		FROM history ORDER BY seq DESC LIMIT ?`, limit)
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]*models.HistoryEntry, error) {
	return r.list(ctx, `SELECT id, kind, amount, status, commitment_id, address, created_at
		FROM history ORDER BY seq DESC`)
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]*models.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select history: %w", err)
	}
	defer rows.Close()

	var result []*models.HistoryEntry
	for rows.Next() {
		var (
			e            models.HistoryEntry
			commitmentID sql.NullString
			ts           int64
		)
		if err := rows.Scan(&e.ID, &e.Kind, &e.Amount, &e.Status, &commitmentID, &e.Address, &ts); err != nil {
			return nil, err
		}
		e.CommitmentID = commitmentID.String
		e.CreatedAt = time.Unix(0, ts).UTC()
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
