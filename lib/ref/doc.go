// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ref provides validated, immutable value types for the Matrix
// identifiers the barcamp bot handles: user IDs, room IDs, event IDs,
// and event types.
//
// Identifiers arrive as raw strings from the homeserver (sync
// responses, state events, login responses) and are parsed into these
// types at the boundary. Code past the boundary never re-validates.
// All types implement encoding.TextMarshaler and TextUnmarshaler so
// they can be used directly in JSON structs and as map keys.
package ref
