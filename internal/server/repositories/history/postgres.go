package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shadowbtc/shadowvault/internal/dbx"
	"github.com/shadowbtc/shadowvault/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, e *models.HistoryEntry) error {
	query := `INSERT INTO history (id, kind, amount, status, commitment_id, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Kind, e.Amount, e.Status, nullString(e.CommitmentID), e.Address, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]*models.HistoryEntry, error) {
	query := `SELECT id, kind, amount, status, commitment_id, address, created_at
		FROM history ORDER BY seq DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.HistoryEntry, error) {
	query := `SELECT id, kind, amount, status, commitment_id, address, created_at
		FROM history ORDER BY seq DESC`
	return r.list(ctx, query)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.HistoryEntry, error) {
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
		)
		if err := rows.Scan(&e.ID, &e.Kind, &e.Amount, &e.Status, &commitmentID, &e.Address, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.CommitmentID = commitmentID.String
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
