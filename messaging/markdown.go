// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// The renderer configuration never changes, and goldmark.Markdown is
// safe for concurrent Convert calls.
var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func markdownRenderer() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		)
	})
	return markdownInstance
}

// RenderMarkdown converts markdown to the HTML subset Matrix clients
// display. Raw HTML in the source is omitted from the output.
func RenderMarkdown(source string) (string, error) {
	var buffer bytes.Buffer
	if err := markdownRenderer().Convert([]byte(source), &buffer); err != nil {
		return "", fmt.Errorf("messaging: rendering markdown: %w", err)
	}
	return strings.TrimRight(buffer.String(), "\n"), nil
}

// NewMarkdownNotice creates an m.notice whose body is the markdown
// source and whose formatted_body is the rendered HTML.
func NewMarkdownNotice(markdown string) (MessageContent, error) {
	rendered, err := RenderMarkdown(markdown)
	if err != nil {
		return MessageContent{}, err
	}
	return MessageContent{
		MsgType:       "m.notice",
		Body:          markdown,
		Format:        "org.matrix.custom.html",
		FormattedBody: rendered,
	}, nil
}
