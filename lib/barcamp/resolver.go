// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package barcamp

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/barcamp-bot/lib/ref"
	"github.com/bureau-foundation/barcamp-bot/lib/schema"
	"github.com/bureau-foundation/barcamp-bot/messaging"
)

// Notices sent when the anchor cannot be resolved.
const (
	NoticeMissingSessionGrid = "could not find `net.nordeck.barcamp.session_grid` state event"
	NoticeMissingTopicStart  = "could not find `topicStartEventId` in `net.nordeck.barcamp.session_grid` state event"
)

// ResolveAnchor returns the topicStartEventId of the room's session
// grid, read fresh from room state (state key: the room ID).
//
// When the grid cannot be read, or has no usable topicStartEventId,
// the matching notice is sent to the room and ErrAnchorUnresolved is
// returned. If sending that notice fails, the *TransportError is
// returned instead. A cancelled ctx yields ErrShutdown and no notice.
func ResolveAnchor(ctx context.Context, client ChatClient, emitter *Emitter, roomID ref.RoomID) (ref.EventID, error) {
	grid, err := messaging.GetState[schema.SessionGridContent](ctx, client, roomID, schema.EventTypeSessionGrid, roomID.String())
	if err != nil {
		if shutdown := shutdownError(ctx); shutdown != nil {
			return ref.EventID{}, shutdown
		}
		return ref.EventID{}, unresolved(ctx, emitter, roomID, NoticeMissingSessionGrid, err)
	}

	anchor, err := ref.ParseEventID(grid.TopicStartEventID)
	if err != nil {
		return ref.EventID{}, unresolved(ctx, emitter, roomID, NoticeMissingTopicStart, err)
	}
	return anchor, nil
}

func unresolved(ctx context.Context, emitter *Emitter, roomID ref.RoomID, notice string, cause error) error {
	if err := emitter.EmitNotice(ctx, roomID, notice); err != nil {
		if shutdown := shutdownError(ctx); shutdown != nil {
			return shutdown
		}
		return err
	}
	return fmt.Errorf("%w: %w", ErrAnchorUnresolved, cause)
}
