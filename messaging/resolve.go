// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/barcamp-bot/lib/ref"
)

// StateReader is the part of Session needed to read typed state.
type StateReader interface {
	GetStateEvent(ctx context.Context, roomID ref.RoomID, eventType ref.EventType, stateKey string) (json.RawMessage, error)
}

// GetState reads a state event and unmarshals its content into T:
//
//	levels, err := messaging.GetState[schema.PowerLevels](ctx, session, roomID, schema.MatrixEventTypePowerLevels, "")
//
// A missing event surfaces as a *MatrixError with ErrCodeNotFound in
// the chain. Undecodable content is a plain error.
func GetState[T any](ctx context.Context, session StateReader, roomID ref.RoomID, eventType ref.EventType, stateKey string) (T, error) {
	var zero T
	content, err := session.GetStateEvent(ctx, roomID, eventType, stateKey)
	if err != nil {
		return zero, fmt.Errorf("reading %s[%q] from room %s: %w", eventType, stateKey, roomID, err)
	}
	var result T
	if err := json.Unmarshal(content, &result); err != nil {
		return zero, fmt.Errorf("unmarshaling %s from room %s: %w", eventType, roomID, err)
	}
	return result, nil
}
