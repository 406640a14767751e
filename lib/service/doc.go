// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package service holds the long-running scaffolding around the
// barcamp bot's command handling:
//
//   - Session persistence: [OpenSession] reuses the access token in
//     the session file when the homeserver still accepts it, and
//     otherwise logs in with the password and rewrites the file.
//   - Sync loop: [InitialSync] establishes the stream position
//     without replaying history; [RunSyncLoop] long-polls from there
//     with exponential backoff and hands each batch to a handler.
//   - Invites: [AcceptInvites] joins rooms the bot is invited to.
//   - HTTP: [HTTPServer] serves the Prometheus endpoint built by
//     [NewMetricsHandler].
//   - Logging: [NewLogger] installs the JSON slog handler.
//
// The binary composes these in its own run function; the package
// provides building blocks, not a runtime.
package service
