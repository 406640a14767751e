// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version carries the build identity of barcamp-bot.
//
// The variables below are injected with -ldflags -X at build time and
// default to development values otherwise:
//
//	go build -ldflags "-X github.com/bureau-foundation/barcamp-bot/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// [Info] feeds the --version flag and the startup log line; [UserAgent]
// is sent on every homeserver request.
package version
