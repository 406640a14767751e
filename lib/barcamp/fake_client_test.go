// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package barcamp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/bureau-foundation/barcamp-bot/lib/ref"
	"github.com/bureau-foundation/barcamp-bot/lib/schema"
	"github.com/bureau-foundation/barcamp-bot/messaging"
)

var (
	testRoom   = ref.MustParseRoomID("!barcamp:test.local")
	testBot    = ref.MustParseUserID("@barcamp-bot:test.local")
	testAlice  = ref.MustParseUserID("@alice:test.local")
	testAnchor = ref.MustParseEventID("$anchor123")
	testEvent  = ref.MustParseEventID("$trigger")
)

type stateKey struct {
	eventType ref.EventType
	stateKey  string
}

type sentEvent struct {
	eventType ref.EventType
	content   any
}

// recordingClient is an in-memory ChatClient. Every send attempt is
// recorded, including ones that fail.
type recordingClient struct {
	mu sync.Mutex

	state      map[stateKey]json.RawMessage
	stateError map[stateKey]error

	// sendEventError, if set, decides the result of each SendEvent.
	sendEventError func(eventType ref.EventType, content any) error
	// sendMessageError is returned by every SendMessage.
	sendMessageError error
	// onGetState runs before each state lookup.
	onGetState func(eventType ref.EventType)

	events   []sentEvent
	messages []messaging.MessageContent
	nextID   int
}

func newRecordingClient() *recordingClient {
	return &recordingClient{
		state:      make(map[stateKey]json.RawMessage),
		stateError: make(map[stateKey]error),
	}
}

func (c *recordingClient) setState(eventType ref.EventType, key string, content string) {
	c.state[stateKey{eventType, key}] = json.RawMessage(content)
}

// withSessionGrid installs a session grid whose topicStartEventId is
// testAnchor.
func (c *recordingClient) withSessionGrid() *recordingClient {
	c.setState(schema.EventTypeSessionGrid, testRoom.String(), `{"topicStartEventId":"$anchor123"}`)
	return c
}

func (c *recordingClient) GetStateEvent(_ context.Context, _ ref.RoomID, eventType ref.EventType, key string) (json.RawMessage, error) {
	if c.onGetState != nil {
		c.onGetState(eventType)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err, ok := c.stateError[stateKey{eventType, key}]; ok {
		return nil, err
	}
	if content, ok := c.state[stateKey{eventType, key}]; ok {
		return content, nil
	}
	return nil, &messaging.MatrixError{Code: messaging.ErrCodeNotFound, Message: "Event not found.", StatusCode: http.StatusNotFound}
}

func (c *recordingClient) SendEvent(_ context.Context, _ ref.RoomID, eventType ref.EventType, content any) (ref.EventID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, sentEvent{eventType: eventType, content: content})
	if c.sendEventError != nil {
		if err := c.sendEventError(eventType, content); err != nil {
			return ref.EventID{}, err
		}
	}
	c.nextID++
	return ref.MustParseEventID(fmt.Sprintf("$sent%d", c.nextID)), nil
}

func (c *recordingClient) SendMessage(_ context.Context, _ ref.RoomID, content messaging.MessageContent) (ref.EventID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, content)
	if c.sendMessageError != nil {
		return ref.EventID{}, c.sendMessageError
	}
	c.nextID++
	return ref.MustParseEventID(fmt.Sprintf("$sent%d", c.nextID)), nil
}

// reactions returns the keys of every attempted reaction.
func (c *recordingClient) reactions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var keys []string
	for _, event := range c.events {
		if event.eventType == schema.MatrixEventTypeReaction {
			keys = append(keys, event.content.(schema.ReactionContent).RelatesTo.Key)
		}
	}
	return keys
}

// submissions returns every attempted topic submission.
func (c *recordingClient) submissions() []schema.TopicSubmissionContent {
	c.mu.Lock()
	defer c.mu.Unlock()
	var submissions []schema.TopicSubmissionContent
	for _, event := range c.events {
		if event.eventType == schema.EventTypeTopicSubmission {
			submissions = append(submissions, event.content.(schema.TopicSubmissionContent))
		}
	}
	return submissions
}

func (c *recordingClient) notices() []messaging.MessageContent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]messaging.MessageContent(nil), c.messages...)
}

func failOn(eventType ref.EventType, err error) func(ref.EventType, any) error {
	return func(sent ref.EventType, _ any) error {
		if sent == eventType {
			return err
		}
		return nil
	}
}

func assertReactions(t *testing.T, client *recordingClient, want ...string) {
	t.Helper()
	got := client.reactions()
	if len(got) != len(want) {
		t.Fatalf("reactions = %q, want %q", got, want)
	}
	for index := range want {
		if got[index] != want[index] {
			t.Fatalf("reactions = %q, want %q", got, want)
		}
	}
}
