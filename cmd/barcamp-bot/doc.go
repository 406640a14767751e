// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Barcamp-bot lets barcamp participants submit session topics from
// chat. It logs into a Matrix account, joins the rooms it is invited
// to, and answers "!submit <title>: <description>" and "!help" in
// those rooms. Accepted submissions appear as topic cards in the
// barcamp widget.
//
// Usage:
//
//	barcamp-bot [--config PATH] [--env-file PATH] [--version]
//
// The config path defaults to $BARCAMP_BOT_CONFIG. The access token
// from the first password login is kept in session_stored_file and
// reused on later starts; the password is only needed again when the
// homeserver rejects that token. It comes from the password key,
// password_file, or an interactive prompt, in that order.
//
// Only messages that arrive after startup are handled. SIGINT and
// SIGTERM stop the bot cleanly after in-flight commands are
// interrupted.
package main
