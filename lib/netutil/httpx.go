// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil bounds reads of homeserver HTTP responses.
//
// Every Matrix client-server response the bot reads (sync batches,
// state events, send acknowledgements, error bodies) goes through
// ReadResponse or one of its wrappers so that a misbehaving homeserver
// cannot make the bot allocate without limit.
package netutil

import (
	"encoding/json"
	"fmt"
	"io"
)

// MaxResponseSize caps a single response body at 64 MB. A sync batch
// for a bot sitting in a handful of barcamp rooms is kilobytes; the
// cap only trips on a broken or hostile server.
const MaxResponseSize int64 = 64 << 20

// ReadResponse reads at most MaxResponseSize bytes of body. Anything
// beyond the cap is silently dropped, which makes an oversized JSON
// body fail to decode rather than exhaust memory.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// DecodeResponse reads body with ReadResponse and unmarshals it into
// target.
func DecodeResponse(body io.Reader, target any) error {
	data, err := ReadResponse(body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// ErrorBody returns whatever could be read of an error response, for
// inclusion in a diagnostic. Read failures yield the partial body.
func ErrorBody(body io.Reader) string {
	data, _ := ReadResponse(body)
	return string(data)
}
