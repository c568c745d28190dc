package proto

import "time"

type Empty struct{}

type MintRequest struct {
	Hash   string  `json:"hash"`
	Amount float64 `json:"amount"`
}

type Commitment struct {
	ID        string    `json:"id"`
	Hash      string    `json:"hash"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	Spent     bool      `json:"spent"`
}

type SpendRequest struct {
	Nullifier    string `json:"nullifier"`
	Proof        string `json:"proof"`
	CommitmentID string `json:"commitment_id"`
}

type WithdrawRequest struct {
	CommitmentID string `json:"commitment_id"`
	Address      string `json:"address"`
}

type ListCommitmentsResponse struct {
	Commitments []*Commitment `json:"commitments"`
}

type ListHistoryRequest struct {
	Limit int `json:"limit"`
}

type HistoryEntry struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	CommitmentID string    `json:"commitment_id,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListHistoryResponse struct {
	Entries []*HistoryEntry `json:"entries"`
}

// Stats mirrors the server aggregates. Counts travel as JSON numbers and
// stay exact below 2^53.
type Stats struct {
	TVL             float64 `json:"tvl"`
	TotalProofs     int64   `json:"total_proofs"`
	PrivacyScore    float64 `json:"privacy_score"`
	HistoryCount    int64   `json:"history_count"`
	CommitmentCount int64   `json:"commitment_count"`
	UnspentCount    int64   `json:"unspent_count"`
	NullifierCount  int64   `json:"nullifier_count"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type SearchResponse struct {
	Commitments []*Commitment   `json:"commitments"`
	History     []*HistoryEntry `json:"history"`
}

type ExportReportResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type PingResponse struct {
	Status string `json:"status"`
}
