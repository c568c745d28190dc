// Package models defines the ledger records persisted by the server.
package models

import (
	"strconv"
	"time"
)

// Commitment is a shielded deposit. Hash and Amount are fixed at creation;
// Spent flips to true at most once.
type Commitment struct {
	ID        string
	Hash      string
	Amount    float64
	CreatedAt time.Time
	Spent     bool
}

// FormatAmount renders an amount the way history entries display it.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 4, 64)
}
