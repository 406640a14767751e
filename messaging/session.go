// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"encoding/json"

	"github.com/bureau-foundation/barcamp-bot/lib/ref"
)

// Session is the authenticated Matrix surface the bot uses.
// *DirectSession is the production implementation.
type Session interface {
	// UserID returns the session's fully-qualified user ID.
	UserID() ref.UserID

	// Close releases resources held by the session. Idempotent.
	Close() error

	// WhoAmI validates the session and returns the user ID the
	// homeserver associates with the token.
	WhoAmI(ctx context.Context) (ref.UserID, error)

	// JoinRoom joins a room the user has been invited to.
	JoinRoom(ctx context.Context, roomID ref.RoomID) (ref.RoomID, error)

	// GetStateEvent fetches one state event's content. A missing event
	// is a *MatrixError with ErrCodeNotFound.
	GetStateEvent(ctx context.Context, roomID ref.RoomID, eventType ref.EventType, stateKey string) (json.RawMessage, error)

	// SendEvent sends a non-state event and returns its event ID.
	SendEvent(ctx context.Context, roomID ref.RoomID, eventType ref.EventType, content any) (ref.EventID, error)

	// SendMessage sends an m.room.message and returns its event ID.
	SendMessage(ctx context.Context, roomID ref.RoomID, content MessageContent) (ref.EventID, error)

	// Sync performs one /sync request.
	Sync(ctx context.Context, options SyncOptions) (*SyncResponse, error)
}

var _ Session = (*DirectSession)(nil)
