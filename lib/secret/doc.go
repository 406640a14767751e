// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds the bot's credentials (the account password and
// the Matrix access token) in memory that is locked against swap,
// excluded from core dumps, and zeroed on release.
//
// [Buffer] allocates outside the Go heap via mmap(MAP_ANONYMOUS), so
// the garbage collector never copies the secret around. Secrets cross
// into heap strings only at the JSON serialization boundary of a
// login request or an Authorization header.
//
// Depends on golang.org/x/sys/unix.
package secret
