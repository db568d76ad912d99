// Package cli provides the interactive notes command-line client.
//
// It wires configuration and the HTTP API client into a REPL. Typical flow:
// register or login, then list, add, edit, search and delete notes. The
// session token lives in memory only and is gone after logout or exit.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
