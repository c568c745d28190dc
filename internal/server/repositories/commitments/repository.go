package commitments

import (
	"context"

	"github.com/shadowbtc/shadowvault/internal/server/models"
)

// Totals are the commitment aggregates read for stats.
type Totals struct {
	Count   int64
	Unspent int64
	TVL     float64
}

type Repository interface {
	Create(ctx context.Context, c *models.Commitment) error
	// GetForUpdate loads a commitment and, where the dialect supports it,
	// locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (*models.Commitment, error)
	// MarkSpent flips spent from false to true. It returns
	// common.ErrAlreadySpent if no unspent row matched.
	MarkSpent(ctx context.Context, id string) error
	ListUnspent(ctx context.Context) ([]*models.Commitment, error)
	ListAll(ctx context.Context) ([]*models.Commitment, error)
	Totals(ctx context.Context) (Totals, error)
	DeleteAll(ctx context.Context) error
}
