// Package models defines the records kept in the local wallet database.
package models

import "time"

// Note statuses. A note is pending between the local insert and the
// server's mint reply.
const (
	NoteStatusPending   = "pending"
	NoteStatusUnspent   = "unspent"
	NoteStatusSpent     = "spent"
	NoteStatusWithdrawn = "withdrawn"
)

// Note is a wallet-held opening of a ledger commitment. The note secret
// lives only in Sealed, encrypted under the wallet key.
type Note struct {
	ID             string
	CommitmentID   string
	CommitmentHash string
	Amount         float64
	Sealed         []byte
	Nonce          []byte
	Status         string
	CreatedAt      time.Time
}

// Spendable reports whether the note can still be sent or withdrawn.
func (n *Note) Spendable() bool {
	return n.Status == NoteStatusUnspent
}
