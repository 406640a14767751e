// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package barcamp

import (
	"strings"
	"unicode"

	"github.com/bureau-foundation/barcamp-bot/lib/ref"
)

// Command names.
const (
	CommandSubmit = "submit"
	CommandHelp   = "help"
)

// CommandMatch is the result of MatchCommand. Args is the body after
// the command token with whitespace left as sent.
type CommandMatch struct {
	Matched bool
	Name    string
	Args    string
}

// MatchCommand reports whether message invokes command name. The
// first whitespace-delimited token of the body must be exactly
// prefix+name (case-sensitive), and the sender must not be the bot.
func MatchCommand(message Message, botUserID ref.UserID, prefix, name string) CommandMatch {
	if message.Sender == botUserID {
		return CommandMatch{}
	}
	if prefix == "" || !strings.HasPrefix(message.Body, prefix) {
		return CommandMatch{}
	}

	token, args := message.Body, ""
	if index := strings.IndexFunc(message.Body, unicode.IsSpace); index >= 0 {
		token, args = message.Body[:index], message.Body[index:]
	}
	if token[len(prefix):] != name {
		return CommandMatch{}
	}
	return CommandMatch{Matched: true, Name: name, Args: args}
}

// Submission is a parsed "!submit" argument string.
type Submission struct {
	Title       string
	Description string
}

// ParseSubmission splits args at the first colon and trims both
// halves. Further colons belong to the description. Empty halves are
// accepted.
func ParseSubmission(args string) (Submission, error) {
	title, description, found := strings.Cut(args, ":")
	if !found {
		return Submission{}, ErrMalformedSubmission
	}
	return Submission{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}, nil
}
