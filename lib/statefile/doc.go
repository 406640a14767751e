// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package statefile replaces small state files atomically. [Write]
// writes to a temporary file in the same directory, fsyncs it, renames
// it over the target, then fsyncs the directory, so a reader (or the
// next process start) sees either the old content or the new content
// and never a truncated file.
//
// The bot keeps its Matrix session in such a file: a session file cut
// short by a crash would force a fresh password login on the next
// start.
package statefile
