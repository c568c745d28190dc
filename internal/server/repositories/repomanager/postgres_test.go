package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/shadowbtc/shadowvault/internal/server/repositories/commitments"
	"github.com/shadowbtc/shadowvault/internal/server/repositories/history"
	"github.com/shadowbtc/shadowvault/internal/server/repositories/nullifiers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestPostgresFactories_ReturnConcreteRepos(t *testing.T) {
	db := newDB(t)
	m := NewPostgresRepositoryManager()

	assert.IsType(t, &commitments.PostgresRepository{}, m.Commitments(db))
	assert.IsType(t, &nullifiers.PostgresRepository{}, m.Nullifiers(db))
	assert.IsType(t, &history.PostgresRepository{}, m.History(db))

	var _ RepositoryManager = m
}

func TestPostgresSnapshotTxOptions(t *testing.T) {
	opts := NewPostgresRepositoryManager().SnapshotTxOptions()
	require.NotNil(t, opts)
	assert.Equal(t, sql.LevelRepeatableRead, opts.Isolation)
	assert.True(t, opts.ReadOnly)
}

func TestPostgresRunMigrations_UsesPostgresDir(t *testing.T) {
	db := newDB(t)
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "postgres" {
			return errors.New("unexpected dir " + dir)
		}
		return nil
	})

	require.NoError(t, NewPostgresRepositoryManager().RunMigrations(context.Background(), db))
}

func TestPostgresRunMigrations_Error(t *testing.T) {
	db := newDB(t)
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	})

	err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db)
	require.EqualError(t, err, "boom")
}
