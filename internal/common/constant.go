// Package common contains shared constants and sentinel errors used across
// shadowvault components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// operator access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// OperatorSubject is the JWT subject that authorises privileged ledger calls
// (reset, report export).
const OperatorSubject = "operator"

// History entry kinds.
const (
	KindMint     = "mint"
	KindTransfer = "transfer"
	KindWithdraw = "withdraw"
	KindFaucet   = "faucet"
)

// StatusConfirmed is the only status a recorded history entry can have.
const StatusConfirmed = "confirmed"
