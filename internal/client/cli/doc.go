// Package cli provides the interactive Orator command-line client.
//
// It wires configuration, the local mirror database, the REST API client,
// and an interactive REPL that supports online/offline operation. Typical
// flow: prompt for credentials, start a background connectivity watcher, and
// execute user commands.
//
// Key features:
//   - Login / Logout, registration, email verification, password reset
//   - Topic and presentation CRUD with a local fallback copy
//   - Practice-video upload and server-side analysis with live progress
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
