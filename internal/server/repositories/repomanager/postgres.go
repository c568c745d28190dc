// Package repomanager provides the dialect-specific RepositoryManager
// implementations and the goose migration hook for each of them.
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

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Commitments(db dbx.DBTX) commitments.Repository {
	return commitments.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Nullifiers(db dbx.DBTX) nullifiers.Repository {
	return nullifiers.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) History(db dbx.DBTX) history.Repository {
	return history.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) SnapshotTxOptions() *sql.TxOptions {
	return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded PostgreSQL schema.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Postgres)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, "postgres")
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}
