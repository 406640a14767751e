// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock is the bot's injectable time source.
//
// The sync loop waits out retry backoff through Clock.After, and the
// dispatcher measures handler latency through Clock.Now. Production
// wires Real(); tests wire Fake() and drive time with Advance:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go service.RunSyncLoop(ctx, session, config, since, handler, fake, logger)
//	fake.WaitForTimers(1)      // sync failed, loop is backing off
//	fake.Advance(time.Second)  // release the retry
//
// WaitForTimers closes the race between a goroutine registering a
// wait and the test advancing past it.
package clock
