// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package barcamp

import (
	"github.com/bureau-foundation/barcamp-bot/lib/ref"
	"github.com/bureau-foundation/barcamp-bot/lib/schema"
	"github.com/bureau-foundation/barcamp-bot/messaging"
)

// Message is an inbound chat message.
type Message struct {
	RoomID  ref.RoomID
	EventID ref.EventID
	Sender  ref.UserID
	Body    string
}

// MessageFromEvent extracts a Message from a timeline event. Only
// m.room.message events with msgtype m.text qualify: notices are
// what bots send, and answering them invites bot loops.
func MessageFromEvent(roomID ref.RoomID, event messaging.Event) (Message, bool) {
	if event.Type != schema.MatrixEventTypeMessage || event.StateKey != nil {
		return Message{}, false
	}
	if event.EventID.IsZero() || event.Sender.IsZero() {
		return Message{}, false
	}
	if msgtype, _ := event.ContentString("msgtype"); msgtype != schema.MsgTypeText {
		return Message{}, false
	}
	body, ok := event.ContentString("body")
	if !ok {
		return Message{}, false
	}
	return Message{
		RoomID:  roomID,
		EventID: event.EventID,
		Sender:  event.Sender,
		Body:    body,
	}, true
}
