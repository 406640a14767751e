// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

// EventType identifies a Matrix state or timeline event type, standard
// (m.room.message, m.reaction) or custom (net.nordeck.barcamp.*).
// Constants live in lib/schema.
//
// A named string rather than a struct: event types need no parsing,
// the type only keeps state keys and event types from being swapped.
type EventType string

// String returns the event type string.
func (t EventType) String() string { return string(t) }
