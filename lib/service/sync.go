// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bureau-foundation/barcamp-bot/lib/clock"
	"github.com/bureau-foundation/barcamp-bot/lib/ref"
	"github.com/bureau-foundation/barcamp-bot/messaging"
)

// SyncConfig configures the /sync long-poll loop.
type SyncConfig struct {
	// Filter is the inline JSON filter for every /sync request.
	Filter string

	// Timeout is the long-poll timeout in milliseconds. Default: 30000.
	Timeout int

	// MaxBackoff caps the delay between retries after a failed sync.
	// Backoff starts at one second and doubles. Default: 30 seconds.
	MaxBackoff time.Duration
}

// SyncHandler receives each /sync response. The next poll starts when
// it returns, so long-running work belongs in goroutines it spawns.
type SyncHandler func(ctx context.Context, response *messaging.SyncResponse)

// InitialSync performs a /sync without a since token and returns the
// next_batch token. The homeserver answers immediately. The caller
// decides what to do with the backlog in the response; the bot only
// uses its invites.
func InitialSync(ctx context.Context, session messaging.Session, filter string) (string, *messaging.SyncResponse, error) {
	response, err := session.Sync(ctx, messaging.SyncOptions{
		Filter:     filter,
		Timeout:    0,
		SetTimeout: true,
	})
	if err != nil {
		return "", nil, fmt.Errorf("initial sync: %w", err)
	}
	return response.NextBatch, response, nil
}

// idleCloser is implemented by sessions with a pooled HTTP transport.
type idleCloser interface {
	CloseIdleConnections()
}

// RunSyncLoop long-polls /sync from sinceToken until ctx is cancelled,
// calling handler with each response. Failed polls are retried with
// exponential backoff measured on clk; the connection pool is flushed
// first so that a dead keep-alive connection is not reused.
func RunSyncLoop(ctx context.Context, session messaging.Session, config SyncConfig, sinceToken string, handler SyncHandler, clk clock.Clock, logger *slog.Logger) {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30000
	}
	maxBackoff := config.MaxBackoff
	if maxBackoff == 0 {
		maxBackoff = 30 * time.Second
	}

	backoff := time.Second

	for {
		if ctx.Err() != nil {
			return
		}

		response, err := session.Sync(ctx, messaging.SyncOptions{
			Since:      sinceToken,
			Timeout:    timeout,
			SetTimeout: true,
			Filter:     config.Filter,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("sync failed, retrying", "error", err, "backoff", backoff)
			if closer, ok := session.(idleCloser); ok {
				closer.CloseIdleConnections()
			}
			select {
			case <-ctx.Done():
				return
			case <-clk.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}

		backoff = time.Second
		sinceToken = response.NextBatch

		handler(ctx, response)
	}
}

// AcceptInvites joins every invited room and returns the IDs joined.
// Failures are logged and skipped.
func AcceptInvites(ctx context.Context, session messaging.Session, invites map[ref.RoomID]messaging.InvitedRoom, logger *slog.Logger) []ref.RoomID {
	var accepted []ref.RoomID
	for roomID := range invites {
		logger.Info("accepting room invite", "room_id", roomID)
		if _, err := session.JoinRoom(ctx, roomID); err != nil {
			logger.Error("failed to accept room invite",
				"room_id", roomID,
				"error", err,
			)
			continue
		}
		accepted = append(accepted, roomID)
	}
	return accepted
}
