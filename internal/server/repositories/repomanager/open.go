package repomanager

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the configured backend, applies migrations and returns
// the pool together with the matching RepositoryManager.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, RepositoryManager, error) {
	var (
		sqlDriver string
		m         RepositoryManager
	)

	switch driver {
	case DriverPostgres:
		sqlDriver, m = "pgx", NewPostgresRepositoryManager()
	case DriverSQLite:
		sqlDriver, m = "sqlite", NewSQLiteRepositoryManager()
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}
	if driver == DriverSQLite {
		// one connection: writers and readers never see "database is locked"
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return db, m, nil
}
