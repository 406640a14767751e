// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package barcamp

// Outcome is the terminal state of one handled message.
type Outcome int

const (
	// OutcomeIgnored: not a command for this bot.
	OutcomeIgnored Outcome = iota
	// OutcomeSubmitted: topic submission emitted and ✅ sent.
	OutcomeSubmitted
	// OutcomeMalformed: no colon in the arguments, ❌ sent.
	OutcomeMalformed
	// OutcomeAnchorUnresolved: notice sent, no reaction.
	OutcomeAnchorUnresolved
	// OutcomeLocked: 🔒️ sent.
	OutcomeLocked
	// OutcomeFailed: an unexpected fault, ❌ attempted.
	OutcomeFailed
	// OutcomeHelp: usage notice and ✅ sent.
	OutcomeHelp
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeAnchorUnresolved:
		return "anchor_unresolved"
	case OutcomeLocked:
		return "locked"
	case OutcomeFailed:
		return "failed"
	case OutcomeHelp:
		return "help"
	default:
		return "unknown"
	}
}
