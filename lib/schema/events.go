// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "github.com/bureau-foundation/barcamp-bot/lib/ref"

// Standard Matrix event types the bot handles.
const (
	MatrixEventTypeMessage     ref.EventType = "m.room.message"
	MatrixEventTypeReaction    ref.EventType = "m.reaction"
	MatrixEventTypePowerLevels ref.EventType = "m.room.power_levels"
	MatrixEventTypeMember      ref.EventType = "m.room.member"
)

// Barcamp widget event types.
const (
	// EventTypeSessionGrid is the barcamp widget's layout state.
	// Topic submissions are correlated to its topicStartEventId.
	//
	// State key: the room's own ID
	EventTypeSessionGrid ref.EventType = "net.nordeck.barcamp.session_grid"

	// EventTypeTopicSubmission is a room (non-state) event carrying a
	// proposed topic. The widget collects these by following the
	// m.reference relation to the session grid's start event.
	EventTypeTopicSubmission ref.EventType = "net.nordeck.barcamp.topic_submission"
)

// Message msgtypes.
const (
	MsgTypeText   = "m.text"
	MsgTypeNotice = "m.notice"
)

// Relation types for m.relates_to.
const (
	RelTypeReference  = "m.reference"
	RelTypeAnnotation = "m.annotation"
)

// FormatHTML is the only formatted_body format Matrix defines.
const FormatHTML = "org.matrix.custom.html"

// SessionGridContent is the subset of the session grid state the bot
// reads. TopicStartEventID stays a plain string so that an absent,
// null, or malformed value can be told apart from a lookup failure.
type SessionGridContent struct {
	TopicStartEventID string `json:"topicStartEventId,omitempty"`
}

// TopicSubmissionContent is the content of a topic submission event.
type TopicSubmissionContent struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Author      ref.UserID `json:"author"`
	RelatesTo   Relation   `json:"m.relates_to"`
}

// ReactionContent is the content of an m.reaction event.
type ReactionContent struct {
	RelatesTo Relation `json:"m.relates_to"`
}

// Relation is an m.relates_to block. Key is set only for annotations.
type Relation struct {
	RelType string      `json:"rel_type"`
	EventID ref.EventID `json:"event_id"`
	Key     string      `json:"key,omitempty"`
}

// NewTopicSubmission builds a submission referencing anchor.
func NewTopicSubmission(title, description string, author ref.UserID, anchor ref.EventID) TopicSubmissionContent {
	return TopicSubmissionContent{
		Title:       title,
		Description: description,
		Author:      author,
		RelatesTo: Relation{
			RelType: RelTypeReference,
			EventID: anchor,
		},
	}
}

// NewReaction builds an annotation of target with key.
func NewReaction(target ref.EventID, key string) ReactionContent {
	return ReactionContent{
		RelatesTo: Relation{
			RelType: RelTypeAnnotation,
			EventID: target,
			Key:     key,
		},
	}
}
