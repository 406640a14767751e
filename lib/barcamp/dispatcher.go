// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package barcamp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bureau-foundation/barcamp-bot/lib/clock"
	"github.com/bureau-foundation/barcamp-bot/lib/ref"
)

// HelpText is the usage notice sent for the help command.
const HelpText = "Hi, I'm matrix-barcamp-bot! Suggest a topic by writing `!submit <title>: <description>`.\n" +
	"I will react with these emoji:\n" +
	"- ✅ if your submission was handled\n" +
	"- ❌ if there was an error (please notify you local admin)\n" +
	"- \U0001F512 if submissions are locked and you may not submit"

const tracerName = "github.com/bureau-foundation/barcamp-bot/lib/barcamp"

// DispatcherConfig configures a Dispatcher.
type DispatcherConfig struct {
	// Client reads room state and sends events. Required.
	Client ChatClient

	// BotUserID is the bot's own user ID. Its messages are never
	// treated as commands, and power levels are evaluated for it.
	// Required.
	BotUserID ref.UserID

	// Prefix introduces commands. Default: "!"
	Prefix string

	// Clock times each command. Default: clock.Real().
	Clock clock.Clock

	// Metrics records per-command counters. Optional.
	Metrics *Metrics

	// TracerProvider creates the span for each command. Default: the
	// global provider.
	TracerProvider trace.TracerProvider

	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Dispatcher routes chat messages to the submit and help commands.
type Dispatcher struct {
	client    ChatClient
	emitter   *Emitter
	botUserID ref.UserID
	prefix    string
	clock     clock.Clock
	metrics   *Metrics
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewDispatcher creates a Dispatcher. It panics if Client or
// BotUserID is missing.
func NewDispatcher(config DispatcherConfig) *Dispatcher {
	if config.Client == nil {
		panic("barcamp.NewDispatcher: Client is required")
	}
	if config.BotUserID.IsZero() {
		panic("barcamp.NewDispatcher: BotUserID is required")
	}
	prefix := config.Prefix
	if prefix == "" {
		prefix = "!"
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	tracerProvider := config.TracerProvider
	if tracerProvider == nil {
		tracerProvider = otel.GetTracerProvider()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		client:    config.Client,
		emitter:   NewEmitter(config.Client),
		botUserID: config.BotUserID,
		prefix:    prefix,
		clock:     clk,
		metrics:   config.Metrics,
		tracer:    tracerProvider.Tracer(tracerName),
		logger:    logger,
	}
}

// Recognizes reports whether message is a command this dispatcher
// handles. Hosts use it to avoid spawning work for ordinary chat.
func (d *Dispatcher) Recognizes(message Message) bool {
	return d.match(message).Matched
}

func (d *Dispatcher) match(message Message) CommandMatch {
	if match := MatchCommand(message, d.botUserID, d.prefix, CommandSubmit); match.Matched {
		return match
	}
	return MatchCommand(message, d.botUserID, d.prefix, CommandHelp)
}

// HandleMessage runs one message through the command state machine
// and returns its outcome.
//
// Submission faults, including panics, become a single ❌ reaction
// and OutcomeFailed with a nil error; the cause is logged. Help
// command send failures are returned. Cancellation of ctx is never
// turned into a reaction: the returned error wraps ErrShutdown and
// the host should stop.
func (d *Dispatcher) HandleMessage(ctx context.Context, message Message) (Outcome, error) {
	match := d.match(message)
	if !match.Matched {
		return OutcomeIgnored, nil
	}

	start := d.clock.Now()
	ctx, span := d.tracer.Start(ctx, "barcamp."+match.Name,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("matrix.room_id", message.RoomID.String()),
			attribute.String("matrix.event_id", message.EventID.String()),
			attribute.String("matrix.sender", message.Sender.String()),
		),
	)
	defer span.End()

	var outcome Outcome
	var err error
	switch match.Name {
	case CommandSubmit:
		outcome, err = d.handleSubmit(ctx, message, match.Args)
	case CommandHelp:
		outcome, err = d.handleHelp(ctx, message)
	}

	elapsed := clock.Since(d.clock, start)
	d.metrics.observe(match.Name, outcome, err, elapsed)
	span.SetAttributes(attribute.String("barcamp.outcome", outcomeLabel(outcome, err)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	logger := d.logger.With(
		"room_id", message.RoomID,
		"event_id", message.EventID,
		"sender", message.Sender,
		"command", match.Name,
		"outcome", outcomeLabel(outcome, err),
		"duration", elapsed,
	)
	switch {
	case errors.Is(err, ErrShutdown):
		logger.Info("command interrupted by shutdown")
	case err != nil:
		logger.Error("command failed", "error", err)
	default:
		logger.Info("command handled")
	}
	return outcome, err
}

// handleSubmit walks Parsing, ResolvingAnchor, Gating and Emitting.
func (d *Dispatcher) handleSubmit(ctx context.Context, message Message, args string) (outcome Outcome, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			d.logger.Error("panic while handling submission",
				"room_id", message.RoomID,
				"event_id", message.EventID,
				"panic", recovered,
				"stack", string(debug.Stack()),
			)
			outcome, err = d.fail(ctx, message, fmt.Errorf("barcamp: panic: %v", recovered))
		}
	}()

	if shutdown := shutdownError(ctx); shutdown != nil {
		return OutcomeFailed, shutdown
	}

	submission, err := ParseSubmission(args)
	if err != nil {
		if err := d.emitter.EmitReaction(ctx, message.RoomID, message.EventID, ReactionError); err != nil {
			return d.fail(ctx, message, err)
		}
		return OutcomeMalformed, nil
	}

	anchor, err := ResolveAnchor(ctx, d.client, d.emitter, message.RoomID)
	if err != nil {
		switch {
		case errors.Is(err, ErrShutdown):
			return OutcomeFailed, err
		case errors.Is(err, ErrAnchorUnresolved):
			d.logger.Warn("session grid anchor unresolved",
				"room_id", message.RoomID, "error", err)
			return OutcomeAnchorUnresolved, nil
		default:
			return d.fail(ctx, message, err)
		}
	}

	open, err := SubmissionsOpen(ctx, d.client, message.RoomID, d.botUserID)
	if err != nil {
		return d.fail(ctx, message, err)
	}
	if !open {
		if err := d.emitter.EmitReaction(ctx, message.RoomID, message.EventID, ReactionLocked); err != nil {
			return d.fail(ctx, message, err)
		}
		return OutcomeLocked, nil
	}

	submissionID, err := d.emitter.EmitSubmission(ctx, message.RoomID, submission, message.Sender, anchor)
	if err != nil {
		return d.fail(ctx, message, err)
	}
	d.logger.Info("topic submitted",
		"room_id", message.RoomID,
		"submission_event_id", submissionID,
		"anchor_event_id", anchor,
		"title", submission.Title,
	)

	if err := d.emitter.EmitReaction(ctx, message.RoomID, message.EventID, ReactionSuccess); err != nil {
		return d.fail(ctx, message, err)
	}
	return OutcomeSubmitted, nil
}

// fail sends the fallback ❌ for cause. The fallback is attempted
// once and its own failure is logged, not returned.
func (d *Dispatcher) fail(ctx context.Context, message Message, cause error) (Outcome, error) {
	if errors.Is(cause, ErrShutdown) {
		return OutcomeFailed, cause
	}
	if shutdown := shutdownError(ctx); shutdown != nil {
		return OutcomeFailed, shutdown
	}

	d.logger.Error("submission failed",
		"room_id", message.RoomID,
		"event_id", message.EventID,
		"error", cause,
	)
	if err := d.emitter.EmitReaction(ctx, message.RoomID, message.EventID, ReactionError); err != nil {
		if shutdown := shutdownError(ctx); shutdown != nil {
			return OutcomeFailed, shutdown
		}
		d.logger.Error("fallback error reaction failed",
			"room_id", message.RoomID,
			"event_id", message.EventID,
			"error", err,
		)
	}
	return OutcomeFailed, nil
}

// handleHelp sends the usage notice and ✅. Failures are returned
// as is.
func (d *Dispatcher) handleHelp(ctx context.Context, message Message) (Outcome, error) {
	if err := d.emitter.EmitNotice(ctx, message.RoomID, HelpText); err != nil {
		if shutdown := shutdownError(ctx); shutdown != nil {
			return OutcomeFailed, shutdown
		}
		return OutcomeFailed, err
	}
	if err := d.emitter.EmitReaction(ctx, message.RoomID, message.EventID, ReactionSuccess); err != nil {
		if shutdown := shutdownError(ctx); shutdown != nil {
			return OutcomeFailed, shutdown
		}
		return OutcomeFailed, err
	}
	return OutcomeHelp, nil
}
