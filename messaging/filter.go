// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"encoding/json"

	"github.com/bureau-foundation/barcamp-bot/lib/ref"
)

// SyncFilter restricts what /sync returns.
type SyncFilter struct {
	// TimelineTypes restricts timeline events to these event types.
	// Empty means all types.
	TimelineTypes []ref.EventType

	// TimelineLimit caps timeline events per room per response. Zero
	// leaves the server default.
	TimelineLimit int
}

// Inline returns the filter as the inline JSON accepted by the
// /sync filter parameter. Presence, account data, ephemeral events,
// and room state are always excluded; invites are unaffected.
func (f SyncFilter) Inline() string {
	timeline := map[string]any{}
	if len(f.TimelineTypes) > 0 {
		timeline["types"] = f.TimelineTypes
	}
	if f.TimelineLimit > 0 {
		timeline["limit"] = f.TimelineLimit
	}

	empty := map[string]any{"types": []string{}}
	top := map[string]any{
		"room": map[string]any{
			"timeline":     timeline,
			"state":        empty,
			"ephemeral":    empty,
			"account_data": empty,
		},
		"presence":     empty,
		"account_data": empty,
	}

	data, _ := json.Marshal(top)
	return string(data)
}
