// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package telemetry installs an OpenTelemetry tracer provider that
// exports spans over OTLP/HTTP. Tracing is opt-in: with no endpoint
// configured, [Setup] registers nothing and the global provider stays
// the no-op default, so instrumented code pays only for span
// bookkeeping it never records.
package telemetry
