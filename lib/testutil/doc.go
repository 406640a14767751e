// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds helpers shared by the bot's tests.
//
// [RequireReceive] and [RequireClosed] bound channel waits with a
// wall-clock timeout so that a broken goroutine fails the test instead
// of hanging it. They are the only real-time waits in the tests;
// everything else runs on clock.Fake.
//
// [UniqueID] returns process-unique identifiers for tests that need
// distinct event or transaction IDs across concurrent goroutines.
package testutil
