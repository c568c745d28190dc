package models

import "time"

// Stats are the aggregate figures over one snapshot of the ledger.
// TotalProofs and PrivacyScore are display heuristics.
type Stats struct {
	TVL             float64 `json:"tvl"`
	TotalProofs     int64   `json:"total_proofs"`
	PrivacyScore    float64 `json:"privacy_score"`
	HistoryCount    int64   `json:"history_count"`
	CommitmentCount int64   `json:"commitment_count"`
	UnspentCount    int64   `json:"unspent_count"`
	NullifierCount  int64   `json:"nullifier_count"`
}

// SearchResult holds the commitments and history entries matching a query.
type SearchResult struct {
	Commitments []*Commitment
	History     []*HistoryEntry
}

// Report is the document uploaded by ExportReport.
type Report struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Stats       Stats           `json:"stats"`
	History     []*HistoryEntry `json:"history"`
}

// StoredReport locates an uploaded report.
type StoredReport struct {
	Key string
	URL string
}
