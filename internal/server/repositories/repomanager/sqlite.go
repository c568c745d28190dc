package repomanager

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	"github.com/shadowbtc/shadowvault/internal/dbx"
	"github.com/shadowbtc/shadowvault/internal/server/migrations"
	"github.com/shadowbtc/shadowvault/internal/server/repositories/commitments"
	"github.com/shadowbtc/shadowvault/internal/server/repositories/history"
	"github.com/shadowbtc/shadowvault/internal/server/repositories/nullifiers"

	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends repositories for the embedded backend,
// used for single-node deployments and tests.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Commitments(db dbx.DBTX) commitments.Repository {
	return commitments.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Nullifiers(db dbx.DBTX) nullifiers.Repository {
	return nullifiers.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) History(db dbx.DBTX) history.Repository {
	return history.NewSQLiteRepository(db)
}

// SnapshotTxOptions returns nil: a plain SQLite transaction already reads
// from one snapshot.
func (m *SQLiteRepositoryManager) SnapshotTxOptions() *sql.TxOptions {
	return nil
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.SQLite)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, "sqlite")
}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}
