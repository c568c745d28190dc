// Package nullifiers stores the permanent set of used spend tokens.
package nullifiers

import (
	"context"
	"time"
)

type Repository interface {
	Exists(ctx context.Context, value string) (bool, error)
	// Insert adds value to the set. A value that is already present yields
	// common.ErrDoubleSpend and leaves the set untouched.
	Insert(ctx context.Context, value string, at time.Time) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}
