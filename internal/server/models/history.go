package models

import "time"

// HistoryEntry is the audit record written together with every ledger
// mutation. Kind is one of the common.Kind* constants.
type HistoryEntry struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	CommitmentID string    `json:"commitment_id,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
