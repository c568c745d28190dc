// Package metadata stores wallet-level key/value settings such as the KDF
// salt and the key verifier.
package metadata

import "context"

const (
	KeySalt     = "kdf_salt"
	KeyVerifier = "key_verifier"
)

type Repository interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetIfAbsent stores value only if key has no value yet and reports
	// whether it did.
	SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error)
}
