package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shadowbtc/shadowvault/internal/client/models"
	"github.com/shadowbtc/shadowvault/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectNote = `SELECT id, COALESCE(commitment_id, ''), commitment_hash, amount, sealed, nonce, status, created_at FROM notes`

func (r *SQLiteRepository) Insert(ctx context.Context, n *models.Note) error {
	var commitmentID any
	if n.CommitmentID != "" {
		commitmentID = n.CommitmentID
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (id, commitment_id, commitment_hash, amount, sealed, nonce, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, n.ID, commitmentID, n.CommitmentHash, n.Amount, n.Sealed, n.Nonce, n.Status, n.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Activate(ctx context.Context, id, commitmentID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notes SET commitment_id = ?, status = ? WHERE id = ? AND status = ?`,
		commitmentID, models.NoteStatusUnspent, id, models.NoteStatusPending)
	if err != nil {
		return fmt.Errorf("failed to activate note: %w", err)
	}
	return requireOne(res)
}

func (r *SQLiteRepository) SetStatus(ctx context.Context, commitmentID, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notes SET status = ? WHERE commitment_id = ?`, status, commitmentID)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return requireOne(res)
}

func (r *SQLiteRepository) GetByCommitmentID(ctx context.Context, commitmentID string) (*models.Note, error) {
	row := r.db.QueryRowContext(ctx, selectNote+` WHERE commitment_id = ?`, commitmentID)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Note, error) {
	rows, err := r.db.QueryContext(ctx, selectNote+` ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (*models.Note, error) {
	var (
		n  models.Note
		ts int64
	)
	if err := s.Scan(&n.ID, &n.CommitmentID, &n.CommitmentHash, &n.Amount, &n.Sealed, &n.Nonce, &n.Status, &ts); err != nil {
		return nil, err
	}
	n.CreatedAt = time.Unix(0, ts).UTC()
	return &n, nil
}

func requireOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
