// Package history stores the append-only audit trail of ledger mutations.
package history

import (
	"context"

	"github.com/shadowbtc/shadowvault/internal/server/models"
)

type Repository interface {
	Append(ctx context.Context, e *models.HistoryEntry) error
	// ListRecent returns at most limit entries, most recent first.
	ListRecent(ctx context.Context, limit int) ([]*models.HistoryEntry, error)
	ListAll(ctx context.Context) ([]*models.HistoryEntry, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}
