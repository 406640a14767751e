// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package barcamp

import (
	"context"
	"encoding/json"

	"github.com/bureau-foundation/barcamp-bot/lib/ref"
	"github.com/bureau-foundation/barcamp-bot/messaging"
)

// ChatClient is the homeserver surface the bot needs.
// *messaging.DirectSession satisfies it.
type ChatClient interface {
	GetStateEvent(ctx context.Context, roomID ref.RoomID, eventType ref.EventType, stateKey string) (json.RawMessage, error)
	SendEvent(ctx context.Context, roomID ref.RoomID, eventType ref.EventType, content any) (ref.EventID, error)
	SendMessage(ctx context.Context, roomID ref.RoomID, content messaging.MessageContent) (ref.EventID, error)
}

var _ ChatClient = (messaging.Session)(nil)
