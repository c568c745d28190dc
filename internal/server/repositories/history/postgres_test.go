package history

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shadowbtc/shadowvault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var cols = []string{"id", "kind", "amount", "status", "commitment_id", "address", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresAppend_NullCommitment(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO history \(id, kind, amount, status, commitment_id, address, created_at\)`).
		WithArgs("h1", "mint", 0.5, "confirmed", nil, "", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(context.Background(), &models.HistoryEntry{
		ID: "h1", Kind: "mint", Amount: 0.5, Status: "confirmed", CreatedAt: at,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListRecent(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Now().UTC()

	mock.ExpectQuery(`FROM history ORDER BY seq DESC LIMIT \$1`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("h2", "transfer", 0.5, "confirmed", "c1", "", at).
			AddRow("h1", "mint", 0.5, "confirmed", nil, "", at))

	got, err := repo.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].CommitmentID)
	assert.Empty(t, got[1].CommitmentID)
}

func TestPostgresListAll_QueryError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM history ORDER BY seq DESC`).WillReturnError(errors.New("db err"))

	_, err := repo.ListAll(context.Background())
	require.ErrorContains(t, err, "failed to select history: db err")
}

func TestSQLite_MostRecentFirst(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()
	_, err = db.Exec(`CREATE TABLE history (
		seq INTEGER PRIMARY KEY AUTOINCREMENT, id TEXT NOT NULL UNIQUE, kind TEXT NOT NULL,
		amount REAL NOT NULL, status TEXT NOT NULL, commitment_id TEXT,
		address TEXT NOT NULL DEFAULT '', created_at INTEGER NOT NULL)`)
	require.NoError(t, err)

	repo := NewSQLiteRepository(db)
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	// identical timestamps: order must follow insertion
	for _, id := range []string{"h1", "h2", "h3"} {
		require.NoError(t, repo.Append(ctx, &models.HistoryEntry{
			ID: id, Kind: "mint", Amount: 1, Status: "confirmed", CommitmentID: "c-" + id, CreatedAt: at,
		}))
	}

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "h3", recent[0].ID)
	assert.Equal(t, "h2", recent[1].ID)
	assert.Equal(t, at, recent[0].CreatedAt)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
