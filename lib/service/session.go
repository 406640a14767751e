// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/bureau-foundation/barcamp-bot/lib/ref"
	"github.com/bureau-foundation/barcamp-bot/lib/secret"
	"github.com/bureau-foundation/barcamp-bot/lib/statefile"
	"github.com/bureau-foundation/barcamp-bot/messaging"
)

// ErrSessionMismatch is returned by LoadSession when the session file
// was written for a different homeserver than the client talks to.
var ErrSessionMismatch = errors.New("session file belongs to a different homeserver")

// SessionData is the JSON structure of the session file.
type SessionData struct {
	HomeserverURL string `json:"homeserver_url"`
	UserID        string `json:"user_id"`
	AccessToken   string `json:"access_token"`
	DeviceID      string `json:"device_id,omitempty"`
}

// LoadSession reads the session file at path and builds a session on
// client. The token is not validated; see ValidateSession.
//
// The raw JSON bytes are zeroed after parsing. The caller must Close
// the returned session.
func LoadSession(path string, client *messaging.Client) (*messaging.DirectSession, error) {
	jsonData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session from %s: %w", path, err)
	}

	var data SessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		secret.Zero(jsonData)
		return nil, fmt.Errorf("parsing session from %s: %w", path, err)
	}
	secret.Zero(jsonData)

	if data.AccessToken == "" {
		return nil, fmt.Errorf("session file %s has empty access token", path)
	}

	if data.HomeserverURL != "" && strings.TrimRight(data.HomeserverURL, "/") != client.HomeserverURL() {
		return nil, fmt.Errorf("%s (%s): %w", path, data.HomeserverURL, ErrSessionMismatch)
	}

	userID, err := ref.ParseUserID(data.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id in %s: %w", path, err)
	}

	return client.SessionFromToken(userID, data.DeviceID, data.AccessToken)
}

// SaveSession atomically replaces path with session, mode 0600. The
// JSON bytes are zeroed after writing.
func SaveSession(path string, session *messaging.DirectSession) error {
	data := SessionData{
		HomeserverURL: session.HomeserverURL(),
		UserID:        session.UserID().String(),
		AccessToken:   session.AccessToken(),
		DeviceID:      session.DeviceID(),
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}

	writeError := statefile.Write(path, jsonData, 0600)
	secret.Zero(jsonData)

	if writeError != nil {
		return fmt.Errorf("writing session: %w", writeError)
	}
	return nil
}

// ValidateSession calls WhoAmI and returns the user ID the homeserver
// associates with the token.
func ValidateSession(ctx context.Context, session messaging.Session) (ref.UserID, error) {
	userID, err := session.WhoAmI(ctx)
	if err != nil {
		return ref.UserID{}, fmt.Errorf("validating matrix session: %w", err)
	}
	return userID, nil
}

// OpenSessionConfig configures OpenSession.
type OpenSessionConfig struct {
	// Client is the homeserver client sessions are created on.
	// Required.
	Client *messaging.Client

	// Path is the session file. Required.
	Path string

	// Username is the login name used when the stored session is
	// missing or rejected.
	Username string

	// Password supplies the password for a fresh login. Called at
	// most once, only when a login is needed. OpenSession closes the
	// returned buffer.
	Password func() (*secret.Buffer, error)

	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// OpenSession returns a validated session and the bot's user ID.
//
// A session file that loads and passes WhoAmI for the configured
// username is reused as is. A missing or unusable file, a session for
// another account, or a token the server reports as unknown,
// triggers a password login and the new session is written back to
// Path. Other WhoAmI failures (network, server errors) are returned.
func OpenSession(ctx context.Context, config OpenSessionConfig) (*messaging.DirectSession, ref.UserID, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	session, err := LoadSession(config.Path, config.Client)
	switch {
	case err == nil:
		userID, validateErr := ValidateSession(ctx, session)
		switch {
		case validateErr == nil && sessionOwnedBy(userID, config.Username):
			logger.Info("reusing stored matrix session", "user_id", userID, "path", config.Path)
			return session, userID, nil
		case validateErr == nil:
			session.Close()
			logger.Warn("stored matrix session belongs to another user, logging in again",
				"path", config.Path, "user_id", userID, "username", config.Username)
		default:
			session.Close()
			if !messaging.IsMatrixError(validateErr, messaging.ErrCodeUnknownToken) &&
				!messaging.IsMatrixError(validateErr, messaging.ErrCodeMissingToken) {
				return nil, ref.UserID{}, validateErr
			}
			logger.Warn("stored matrix session rejected, logging in again", "path", config.Path, "error", validateErr)
		}
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("no stored matrix session, logging in", "path", config.Path)
	default:
		// The file is a cache of the last login; anything unusable in
		// it is replaced by a fresh one.
		logger.Warn("stored matrix session unusable, logging in again", "path", config.Path, "error", err)
	}

	if config.Password == nil {
		return nil, ref.UserID{}, fmt.Errorf("no valid session in %s and no password source", config.Path)
	}
	password, err := config.Password()
	if err != nil {
		return nil, ref.UserID{}, fmt.Errorf("obtaining password: %w", err)
	}
	defer password.Close()

	session, err = config.Client.Login(ctx, config.Username, password)
	if err != nil {
		return nil, ref.UserID{}, err
	}

	if err := SaveSession(config.Path, session); err != nil {
		// The session works; only reuse across restarts is lost.
		logger.Error("failed to persist matrix session", "path", config.Path, "error", err)
	}

	return session, session.UserID(), nil
}

// sessionOwnedBy reports whether userID is the account username logs
// in as. A username starting with '@' is a full user ID; anything else
// is compared against the localpart. An empty username accepts any
// user.
func sessionOwnedBy(userID ref.UserID, username string) bool {
	switch {
	case username == "":
		return true
	case strings.HasPrefix(username, "@"):
		return userID.String() == username
	default:
		return userID.Localpart() == username
	}
}
