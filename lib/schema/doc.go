// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the Matrix event vocabulary barcamp-bot reads
// and writes: the standard message, reaction, and power-level types,
// plus the barcamp widget's session grid (read) and topic submission
// (written). Event type constants are Matrix "type" strings; Go
// structs are the JSON content.
//
// [PowerLevels.CanSendEvent] is the permission check behind the
// submission lock: the barcamp widget locks submissions by raising the
// power level required for [EventTypeTopicSubmission] above the bot's.
//
// This package depends only on lib/ref.
package schema
