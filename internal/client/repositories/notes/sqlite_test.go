package notes

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shadowbtc/shadowvault/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE notes (
		id TEXT PRIMARY KEY, commitment_id TEXT UNIQUE, commitment_hash TEXT NOT NULL,
		amount REAL NOT NULL, sealed BLOB NOT NULL, nonce BLOB NOT NULL,
		status TEXT NOT NULL, created_at INTEGER NOT NULL)`)
	require.NoError(t, err)
	return NewSQLiteRepository(db), db
}

func pending(id string, created time.Time) *models.Note {
	return &models.Note{
		ID:             id,
		CommitmentHash: "hash-" + id,
		Amount:         1.5,
		Sealed:         []byte{1, 2, 3},
		Nonce:          []byte{4, 5},
		Status:         models.NoteStatusPending,
		CreatedAt:      created,
	}
}

func TestNoteLifecycle(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 4, 5, 6, 7, 8, time.UTC)

	require.NoError(t, repo.Insert(ctx, pending("n1", created)))
	require.NoError(t, repo.Activate(ctx, "n1", "c1"))

	n, err := repo.GetByCommitmentID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "n1", n.ID)
	assert.Equal(t, models.NoteStatusUnspent, n.Status)
	assert.Equal(t, created, n.CreatedAt)
	assert.Equal(t, []byte{1, 2, 3}, n.Sealed)
	assert.True(t, n.Spendable())

	require.NoError(t, repo.SetStatus(ctx, "c1", models.NoteStatusSpent))
	n, err = repo.GetByCommitmentID(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, n.Spendable())
}

func TestActivate_OnlyPending(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, pending("n1", time.Now())))
	require.NoError(t, repo.Activate(ctx, "n1", "c1"))
	require.ErrorIs(t, repo.Activate(ctx, "n1", "c2"), ErrNotFound)
	require.ErrorIs(t, repo.Activate(ctx, "missing", "c3"), ErrNotFound)
}

func TestGetAndSetStatus_NotFound(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.GetByCommitmentID(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, repo.SetStatus(ctx, "nope", models.NoteStatusSpent), ErrNotFound)
}

func TestListAndDelete(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Insert(ctx, pending("b", base.Add(time.Second))))
	require.NoError(t, repo.Insert(ctx, pending("a", base)))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "", list[0].CommitmentID)

	require.NoError(t, repo.Delete(ctx, "a"))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)
}

func TestErrorsAreWrapped(t *testing.T) {
	repo, db := newRepo(t)
	ctx := context.Background()
	require.NoError(t, db.Close())

	require.ErrorContains(t, repo.Insert(ctx, pending("x", time.Now())), "failed to insert note")
	require.ErrorContains(t, repo.Activate(ctx, "x", "c"), "failed to activate note")
	require.ErrorContains(t, repo.SetStatus(ctx, "c", models.NoteStatusSpent), "failed to update note")
	_, err := repo.GetByCommitmentID(ctx, "c")
	require.ErrorContains(t, err, "failed to get note")
	_, err = repo.List(ctx)
	require.ErrorContains(t, err, "failed to select notes")
	require.ErrorContains(t, repo.Delete(ctx, "x"), "failed to delete note")
}
