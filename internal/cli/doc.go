// Package cli provides the interactive rolodex command-line client.
//
// It wires configuration, the auth backend client, the contact store and an
// interactive REPL. Typical flow: check for an existing session, show the
// prompt, and execute user commands.
//
// Key features:
//   - Login / Logout / password reset against the auth backend
//   - List and search contacts, show a single contact
//   - Create, edit, favorite and remove contacts
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
