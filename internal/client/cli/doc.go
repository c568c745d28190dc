// Package cli provides the shadowvault wallet command line.
//
// Without arguments the CLI starts an interactive REPL; with a sub-command
// (for example "shadowvault-cli mint 1.5") it runs that one command and exits.
//
// Commands:
//   - mint <amount>, faucet <amount>: create a note and its commitment
//   - send <commitment-id>: spend a note with its nullifier and proof token
//   - withdraw <commitment-id> <address>: exit a note to an address
//   - notes: list local notes
//   - commitments, history [limit], stats, search <query>: ledger queries
//   - reset, export [file]: operator commands, need the server secret (-s)
//
// The wallet passphrase is asked for once, on the first command that needs
// the wallet key.
package cli
