// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/barcamp-bot/lib/barcamp"
	"github.com/bureau-foundation/barcamp-bot/lib/ref"
	"github.com/bureau-foundation/barcamp-bot/lib/service"
	"github.com/bureau-foundation/barcamp-bot/messaging"
)

// bot connects the sync loop to the dispatcher. Each recognized
// command runs as its own task in group; the group's limit bounds how
// many run at once, and the sync loop waits for a free slot.
type bot struct {
	session      messaging.Session
	dispatcher   *barcamp.Dispatcher
	joinOnInvite bool
	group        *errgroup.Group
	logger       *slog.Logger
}

// handleSync is the service.SyncHandler for the bot.
func (b *bot) handleSync(ctx context.Context, response *messaging.SyncResponse) {
	b.acceptInvites(ctx, response.Rooms.Invite)

	for roomID, room := range response.Rooms.Join {
		for _, event := range room.Timeline.Events {
			message, ok := barcamp.MessageFromEvent(roomID, event)
			if !ok || !b.dispatcher.Recognizes(message) {
				continue
			}
			b.group.Go(func() error {
				return b.handleMessage(ctx, message)
			})
		}
	}
}

// handleMessage runs one command. Only ErrShutdown is returned, which
// cancels the group; other failures have been reported to the room or
// logged by the dispatcher.
func (b *bot) handleMessage(ctx context.Context, message barcamp.Message) error {
	_, err := b.dispatcher.HandleMessage(ctx, message)
	if errors.Is(err, barcamp.ErrShutdown) {
		return err
	}
	return nil
}

func (b *bot) acceptInvites(ctx context.Context, invites map[ref.RoomID]messaging.InvitedRoom) {
	if !b.joinOnInvite || len(invites) == 0 {
		return
	}
	service.AcceptInvites(ctx, b.session, invites, b.logger)
}
