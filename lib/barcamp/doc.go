// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package barcamp turns chat commands into barcamp widget events.
//
// A participant writes "!submit <title>: <description>" in a barcamp
// room. The [Dispatcher] recognizes the command ([MatchCommand]),
// splits the arguments ([ParseSubmission]), finds the session grid's
// topicStartEventId ([ResolveAnchor]), checks that the bot may still
// send topic submissions ([SubmissionsOpen]), and emits a
// net.nordeck.barcamp.topic_submission event referencing the anchor
// ([Emitter]). The widget renders each such event as a topic card.
//
// Every recognized submission attempt is acknowledged with exactly
// one reaction on the triggering message:
//
//   - ✅ the submission was emitted
//   - 🔒️ the room's power levels no longer let the bot submit
//   - ❌ the command was malformed or something failed
//
// The one exception is a missing anchor, which is reported with an
// m.notice instead, since it is a room setup problem rather than a
// problem with the participant's message.
//
// The package holds no mutable state. Room state and power levels are
// read fresh for every attempt, so a [Dispatcher] is safe to call from
// any number of goroutines.
package barcamp
