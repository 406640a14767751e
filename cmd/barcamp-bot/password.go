// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/barcamp-bot/lib/config"
	"github.com/bureau-foundation/barcamp-bot/lib/secret"
)

// passwordSource returns the login password supplier for cfg: the
// inline password, else password_file, else a terminal prompt.
func passwordSource(cfg *config.Config) func() (*secret.Buffer, error) {
	return func() (*secret.Buffer, error) {
		switch {
		case cfg.Password != "":
			return secret.NewFromString(cfg.Password)
		case cfg.PasswordFile != "":
			return secret.ReadFromPath(cfg.PasswordFile)
		default:
			return promptPassword(cfg.Username)
		}
	}
}

func promptPassword(username string) (*secret.Buffer, error) {
	stdinFileDescriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFileDescriptor) {
		return nil, fmt.Errorf("no terminal available for the password prompt (set password or password_file)")
	}

	fmt.Fprintf(os.Stderr, "Password for %s: ", username)
	passwordBytes, err := term.ReadPassword(stdinFileDescriptor)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}
	if len(passwordBytes) == 0 {
		return nil, fmt.Errorf("empty password")
	}

	buffer, err := secret.NewFromBytes(passwordBytes)
	if err != nil {
		secret.Zero(passwordBytes)
		return nil, err
	}
	return buffer, nil
}
