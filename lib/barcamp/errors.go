// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package barcamp

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrMalformedSubmission is returned by ParseSubmission when the
	// arguments contain no colon.
	ErrMalformedSubmission = errors.New("barcamp: submission must be \"<title>: <description>\"")

	// ErrAnchorUnresolved means the room has no usable session grid
	// anchor. The room has already been told via a notice.
	ErrAnchorUnresolved = errors.New("barcamp: session grid anchor unresolved")

	// ErrSubmissionLocked means the bot may not send topic
	// submissions in the room.
	ErrSubmissionLocked = errors.New("barcamp: submissions are locked")

	// ErrShutdown is returned when the context is cancelled while a
	// command is being handled. It is never turned into a reaction.
	ErrShutdown = errors.New("barcamp: shutting down")
)

// TransportError is a failed call to the homeserver.
type TransportError struct {
	// Op names the call, e.g. "send reaction".
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("barcamp: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// shutdownError returns an ErrShutdown wrapper when ctx is done, nil
// otherwise. Call it wherever a failed call may have been caused by
// cancellation.
func shutdownError(ctx context.Context) error {
	if cause := ctx.Err(); cause != nil {
		return fmt.Errorf("%w: %w", ErrShutdown, cause)
	}
	return nil
}
