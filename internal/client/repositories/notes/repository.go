// Package notes persists the wallet's sealed notes.
package notes

import (
	"context"
	"errors"

	"github.com/shadowbtc/shadowvault/internal/client/models"
)

var ErrNotFound = errors.New("note not found")

type Repository interface {
	Insert(ctx context.Context, n *models.Note) error
	// Activate binds a pending note to the commitment id the server
	// assigned and marks it unspent.
	Activate(ctx context.Context, id, commitmentID string) error
	SetStatus(ctx context.Context, commitmentID, status string) error
	GetByCommitmentID(ctx context.Context, commitmentID string) (*models.Note, error)
	List(ctx context.Context) ([]*models.Note, error)
	Delete(ctx context.Context, id string) error
}
