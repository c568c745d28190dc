// Package stats holds the display-only figures shown next to the ledger
// totals. Nothing in the ledger's correctness depends on these formulas.
package stats

import "math"

// ProofsPerNote counts one deposit proof and one spend proof per note.
const ProofsPerNote = 2

// TotalProofs scales the commitment count into an approximate proof count.
func TotalProofs(commitments int64) int64 {
	if commitments <= 0 {
		return 0
	}
	return commitments * ProofsPerNote
}

// PrivacyScore grows with the anonymity set: 100*n/(n+1), one decimal,
// always in [0, 100).
func PrivacyScore(commitments int64) float64 {
	if commitments <= 0 {
		return 0
	}
	n := float64(commitments)
	score := math.Floor(1000*n/(n+1)) / 10
	return math.Min(score, 99.9)
}
