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

// Reaction keys.
const (
	ReactionSuccess = "\u2705"          // ✅
	ReactionError   = "\u274C"          // ❌
	ReactionLocked  = "\U0001F512\uFE0F" // 🔒️
)

// Emitter sends the bot's outbound events. Each method makes exactly
// one request; failures come back as *TransportError.
type Emitter struct {
	client ChatClient
}

// NewEmitter returns an Emitter sending through client.
func NewEmitter(client ChatClient) *Emitter {
	return &Emitter{client: client}
}

// EmitSubmission sends a topic submission authored by author that
// references anchor.
func (e *Emitter) EmitSubmission(ctx context.Context, roomID ref.RoomID, submission Submission, author ref.UserID, anchor ref.EventID) (ref.EventID, error) {
	content := schema.NewTopicSubmission(submission.Title, submission.Description, author, anchor)
	eventID, err := e.client.SendEvent(ctx, roomID, schema.EventTypeTopicSubmission, content)
	if err != nil {
		return ref.EventID{}, &TransportError{Op: "send topic submission", Err: err}
	}
	return eventID, nil
}

// EmitReaction annotates trigger with key.
func (e *Emitter) EmitReaction(ctx context.Context, roomID ref.RoomID, trigger ref.EventID, key string) error {
	if _, err := e.client.SendEvent(ctx, roomID, schema.MatrixEventTypeReaction, schema.NewReaction(trigger, key)); err != nil {
		return &TransportError{Op: "send reaction " + key, Err: err}
	}
	return nil
}

// EmitNotice sends markdown as an m.notice with an HTML rendering.
func (e *Emitter) EmitNotice(ctx context.Context, roomID ref.RoomID, markdown string) error {
	content, err := messaging.NewMarkdownNotice(markdown)
	if err != nil {
		return fmt.Errorf("barcamp: rendering notice: %w", err)
	}
	if _, err := e.client.SendMessage(ctx, roomID, content); err != nil {
		return &TransportError{Op: "send notice", Err: err}
	}
	return nil
}
