// Package client contains the CLI's building blocks for talking to the
// shadowvault ledger.
//
// # Overview
//
// The package provides:
//  1. The Client interface, one method per LedgerService RPC.
//  2. GRPCClient, which manages the connection, attaches the operator token
//     to privileged calls through an interceptor and maps gRPC statuses back
//     to the sentinel errors in internal/common.
//  3. Wallet database bootstrap (InitDatabase, RunMigrations) over SQLite and
//     embedded goose migrations.
//
// # Error Handling
//
// Server rejections come back as *RemoteError. Match them with errors.Is
// against common.ErrDoubleSpend, common.ErrAlreadySpent and the other
// ledger sentinels, or against ErrUnauthorized / ErrUnavailable.
package client
