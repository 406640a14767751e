// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/bureau-foundation/barcamp-bot/lib/clock"
	"github.com/bureau-foundation/barcamp-bot/lib/ref"
	"github.com/bureau-foundation/barcamp-bot/lib/testutil"
	"github.com/bureau-foundation/barcamp-bot/messaging"
)

// scriptedSession replays a fixed sequence of sync results and records
// every call.
type scriptedSession struct {
	mu         sync.Mutex
	results    []syncResult
	syncCalls  []messaging.SyncOptions
	joined     []ref.RoomID
	joinFails  map[ref.RoomID]bool
	idleCloses int
	exhausted  chan struct{}
}

type syncResult struct {
	response *messaging.SyncResponse
	err      error
}

func (s *scriptedSession) Sync(ctx context.Context, options messaging.SyncOptions) (*messaging.SyncResponse, error) {
	s.mu.Lock()
	s.syncCalls = append(s.syncCalls, options)
	if len(s.results) == 0 {
		s.mu.Unlock()
		if s.exhausted != nil {
			close(s.exhausted)
			s.exhausted = nil
		}
		<-ctx.Done()
		return nil, ctx.Err()
	}
	result := s.results[0]
	s.results = s.results[1:]
	s.mu.Unlock()
	return result.response, result.err
}

func (s *scriptedSession) JoinRoom(_ context.Context, roomID ref.RoomID) (ref.RoomID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.joinFails[roomID] {
		return ref.RoomID{}, errors.New("join refused")
	}
	s.joined = append(s.joined, roomID)
	return roomID, nil
}

func (s *scriptedSession) CloseIdleConnections() {
	s.mu.Lock()
	s.idleCloses++
	s.mu.Unlock()
}

func (s *scriptedSession) UserID() ref.UserID { return ref.MustParseUserID("@barcamp-bot:test.local") }
func (s *scriptedSession) Close() error       { return nil }
func (s *scriptedSession) WhoAmI(context.Context) (ref.UserID, error) {
	return s.UserID(), nil
}
func (s *scriptedSession) GetStateEvent(context.Context, ref.RoomID, ref.EventType, string) (json.RawMessage, error) {
	return nil, errors.New("not scripted")
}
func (s *scriptedSession) SendEvent(context.Context, ref.RoomID, ref.EventType, any) (ref.EventID, error) {
	return ref.EventID{}, errors.New("not scripted")
}
func (s *scriptedSession) SendMessage(context.Context, ref.RoomID, messaging.MessageContent) (ref.EventID, error) {
	return ref.EventID{}, errors.New("not scripted")
}

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestInitialSync(t *testing.T) {
	session := &scriptedSession{results: []syncResult{{
		response: &messaging.SyncResponse{NextBatch: "s1"},
	}}}

	since, response, err := InitialSync(context.Background(), session, `{"room":{}}`)
	if err != nil {
		t.Fatalf("InitialSync: %v", err)
	}
	if since != "s1" || response.NextBatch != "s1" {
		t.Errorf("since = %q", since)
	}
	options := session.syncCalls[0]
	if options.Since != "" || !options.SetTimeout || options.Timeout != 0 || options.Filter != `{"room":{}}` {
		t.Errorf("initial sync options = %+v", options)
	}

	failing := &scriptedSession{results: []syncResult{{err: errors.New("connection refused")}}}
	if _, _, err := InitialSync(context.Background(), failing, ""); err == nil {
		t.Error("expected error from failing initial sync")
	}
}

func TestRunSyncLoop(t *testing.T) {
	t.Run("advances since token and delivers responses", func(t *testing.T) {
		exhausted := make(chan struct{})
		session := &scriptedSession{
			exhausted: exhausted,
			results: []syncResult{
				{response: &messaging.SyncResponse{NextBatch: "s2"}},
				{response: &messaging.SyncResponse{NextBatch: "s3"}},
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var delivered []string
		handler := func(_ context.Context, response *messaging.SyncResponse) {
			delivered = append(delivered, response.NextBatch)
		}

		done := make(chan struct{})
		go func() {
			RunSyncLoop(ctx, session, SyncConfig{Filter: "f"}, "s1", handler, clock.Fake(epoch), discardLogger)
			close(done)
		}()

		testutil.RequireClosed(t, exhausted, testutil.DefaultTimeout, "sync script exhausted")
		cancel()
		testutil.RequireClosed(t, done, testutil.DefaultTimeout, "sync loop exit")

		if len(delivered) != 2 || delivered[0] != "s2" || delivered[1] != "s3" {
			t.Errorf("delivered = %v", delivered)
		}
		session.mu.Lock()
		defer session.mu.Unlock()
		wantSince := []string{"s1", "s2", "s3"}
		for index, options := range session.syncCalls {
			if options.Since != wantSince[index] {
				t.Errorf("call %d since = %q, want %q", index, options.Since, wantSince[index])
			}
			if options.Timeout != 30000 || !options.SetTimeout || options.Filter != "f" {
				t.Errorf("call %d options = %+v", index, options)
			}
		}
	})

	t.Run("backs off exponentially on errors", func(t *testing.T) {
		exhausted := make(chan struct{})
		session := &scriptedSession{
			exhausted: exhausted,
			results: []syncResult{
				{err: errors.New("502 bad gateway")},
				{err: errors.New("502 bad gateway")},
				{response: &messaging.SyncResponse{NextBatch: "s2"}},
			},
		}
		fakeClock := clock.Fake(epoch)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		delivered := make(chan string, 1)
		done := make(chan struct{})
		go func() {
			RunSyncLoop(ctx, session, SyncConfig{}, "s1", func(_ context.Context, response *messaging.SyncResponse) {
				delivered <- response.NextBatch
			}, fakeClock, discardLogger)
			close(done)
		}()

		fakeClock.WaitForTimers(1)
		fakeClock.Advance(999 * time.Millisecond)
		if fakeClock.PendingCount() != 1 {
			t.Fatal("first retry fired before one second")
		}
		fakeClock.Advance(time.Millisecond)

		fakeClock.WaitForTimers(1)
		fakeClock.Advance(time.Second)
		if fakeClock.PendingCount() != 1 {
			t.Fatal("second retry fired before two seconds")
		}
		fakeClock.Advance(time.Second)

		if got := testutil.RequireReceive(t, delivered, testutil.DefaultTimeout, "batch after backoff"); got != "s2" {
			t.Errorf("delivered %q, want s2", got)
		}
		testutil.RequireClosed(t, exhausted, testutil.DefaultTimeout, "sync script exhausted")
		cancel()
		testutil.RequireClosed(t, done, testutil.DefaultTimeout, "sync loop exit")

		session.mu.Lock()
		defer session.mu.Unlock()
		if session.idleCloses != 2 {
			t.Errorf("CloseIdleConnections called %d times, want 2", session.idleCloses)
		}
	})

	t.Run("returns on cancellation during backoff", func(t *testing.T) {
		session := &scriptedSession{results: []syncResult{{err: errors.New("down")}}}
		fakeClock := clock.Fake(epoch)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			RunSyncLoop(ctx, session, SyncConfig{}, "s1", func(context.Context, *messaging.SyncResponse) {
				t.Error("handler called")
			}, fakeClock, discardLogger)
			close(done)
		}()

		fakeClock.WaitForTimers(1)
		cancel()
		testutil.RequireClosed(t, done, testutil.DefaultTimeout, "RunSyncLoop return after cancellation")
	})
}

func TestAcceptInvites(t *testing.T) {
	good := ref.MustParseRoomID("!barcamp:test.local")
	bad := ref.MustParseRoomID("!private:test.local")
	session := &scriptedSession{joinFails: map[ref.RoomID]bool{bad: true}}

	accepted := AcceptInvites(context.Background(), session, map[ref.RoomID]messaging.InvitedRoom{
		good: {},
		bad:  {},
	}, discardLogger)

	if len(accepted) != 1 || accepted[0] != good {
		t.Errorf("accepted = %v, want [%s]", accepted, good)
	}
	joined := make([]string, 0, len(session.joined))
	for _, roomID := range session.joined {
		joined = append(joined, roomID.String())
	}
	sort.Strings(joined)
	if len(joined) != 1 || joined[0] != good.String() {
		t.Errorf("joined = %v", joined)
	}
}
