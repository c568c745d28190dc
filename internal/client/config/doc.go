// Package config loads runtime configuration for the shadowvault wallet CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the ledger gRPC endpoint
//	-w string   path of the local wallet database
//	-s string   server secret used to sign operator tokens
//	-t int      per-request timeout (seconds)
//	-v string   log level
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "wallet_path": "wallet.db",
//	  "secret_key": "...",
//	  "request_timeout": "10s",
//	  "log_level": "warn"
//	}
package config
