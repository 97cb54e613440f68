// Package cli provides the interactive CivicHub command-line client.
//
// It wires configuration, local storage, a gateway binding and the client
// services into a REPL. Typical flow: restore the saved session or prompt
// for credentials, start a background connectivity watcher, and execute
// user commands against the local store.
//
// Key features:
//   - Login / Register / Logout (demo accounts work offline)
//   - Complaints, notices, visitors, payments and notifications
//   - Dashboard figures (stats) and avatar upload
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See Build, StartOnlineStatusWatcher, and runREPL for details.
package cli
