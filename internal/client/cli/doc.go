// Package cli provides the interactive rentalauth command-line client.
//
// It wires configuration, the token store, the table client and one
// auth.Manager, then runs a REPL that drives the manager and prints every
// state change it is notified about.
//
// Commands:
//   - login / logout
//   - status        show the derived session state and its claims
//   - token <jwt>   adopt an externally issued session token
//   - users [filter] list user records (requires a session)
//   - help / exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
