// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package messaging wraps the slice of the Matrix client-server API a
// chat bot needs: password login, token validation, long-poll sync,
// joining rooms, reading state events, and sending room events.
//
// [Client] is the unauthenticated half. It holds the homeserver URL,
// the HTTP transport, and an optional outbound rate limiter, and
// produces a [DirectSession] from a login or a stored access token.
// The access token lives in a secret.Buffer (mlocked, excluded from
// core dumps); callers must Close the session to release it.
//
// [Session] is the interface the rest of the bot programs against, so
// tests can substitute a fake homeserver or a recording double.
//
// Every API failure is a [*MatrixError] carrying the errcode and HTTP
// status; [IsMatrixError] tests for a specific errcode. Request paths
// are built by concatenation with url.PathEscape per segment so that
// room and event IDs containing reserved characters round-trip intact.
//
// Sends use a fresh UUID as the transaction ID, which makes a retried
// PUT idempotent on the homeserver. [NewMarkdownNotice] renders an
// m.notice with both a plain markdown body and an HTML formatted_body.
package messaging
