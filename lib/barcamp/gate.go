// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package barcamp

import (
	"context"

	"github.com/bureau-foundation/barcamp-bot/lib/ref"
	"github.com/bureau-foundation/barcamp-bot/lib/schema"
	"github.com/bureau-foundation/barcamp-bot/messaging"
)

// SubmissionsOpen reports whether botUserID may send topic
// submissions in the room under its current m.room.power_levels. The
// barcamp widget locks submissions by raising the required level
// above the bot's. A room without a power levels event is evaluated
// with the Matrix defaults, which leave it open.
func SubmissionsOpen(ctx context.Context, client ChatClient, roomID ref.RoomID, botUserID ref.UserID) (bool, error) {
	powerLevels, err := messaging.GetState[schema.PowerLevels](ctx, client, roomID, schema.MatrixEventTypePowerLevels, "")
	if err != nil {
		if shutdown := shutdownError(ctx); shutdown != nil {
			return false, shutdown
		}
		if !messaging.IsMatrixError(err, messaging.ErrCodeNotFound) {
			return false, &TransportError{Op: "read power levels", Err: err}
		}
		powerLevels = schema.PowerLevels{}
	}
	return powerLevels.CanSendEvent(botUserID, schema.EventTypeTopicSubmission), nil
}
