// Package cli provides the interactive FlyScope command-line client.
//
// It wires configuration, an AccountService (local database or remote
// accounts server) and a REPL. The REPL holds at most one authenticated
// identity; logging in replaces it and logout clears it.
//
// Commands:
//   - register, login, logout, whoami
//   - users [-sort newest|oldest|az|za] [search] (admin)
//   - delete <id> (admin, confirmed by typing the username)
//   - stats (admin)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
