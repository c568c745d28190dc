package repomanager

import (
	"context"
	"database/sql"

	"github.com/shadowbtc/shadowvault/internal/dbx"
	"github.com/shadowbtc/shadowvault/internal/server/repositories/commitments"
	"github.com/shadowbtc/shadowvault/internal/server/repositories/history"
	"github.com/shadowbtc/shadowvault/internal/server/repositories/nullifiers"
)

// RepositoryManager vends repositories bound to a DBTX so a service can run
// several of them inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	// SnapshotTxOptions are the options for read transactions that must see
	// one consistent state.
	SnapshotTxOptions() *sql.TxOptions
	Commitments(db dbx.DBTX) commitments.Repository
	Nullifiers(db dbx.DBTX) nullifiers.Repository
	History(db dbx.DBTX) history.Repository
}
