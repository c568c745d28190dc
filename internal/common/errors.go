// Package common defines shared constants and sentinel errors used across
// client and server layers of shadowvault. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("commitment not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrStorageFailure = errors.New("storage failure")

	// Ledger rejections. Each one has a distinct, stable message.
	ErrInvalidInput   = errors.New("invalid input")
	ErrDoubleSpend    = errors.New("double spend detected: nullifier already used")
	ErrInvalidProof   = errors.New("invalid zk proof")
	ErrAlreadySpent   = errors.New("commitment already spent")
	ErrInvalidOrSpent = errors.New("invalid or spent commitment")
	ErrFaucetLimit    = errors.New("faucet limit exceeded")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
