// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process holds the entrypoint error path for barcamp-bot.
// Fatal reports errors that occur before the structured logger exists
// (bad flags, unreadable config) or that end run().
package process
