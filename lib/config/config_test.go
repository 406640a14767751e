// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.SessionStoredFile != "session.txt" {
		t.Errorf("session_stored_file = %q, want session.txt", cfg.SessionStoredFile)
	}
	if cfg.Prefix != "!" {
		t.Errorf("prefix = %q, want !", cfg.Prefix)
	}
	if !cfg.JoinOnInvite {
		t.Error("join_on_invite should default to true")
	}
	if cfg.MaxConcurrentHandlers != 16 {
		t.Errorf("max_concurrent_handlers = %d, want 16", cfg.MaxConcurrentHandlers)
	}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("log level = %v, want info", cfg.SlogLevel())
	}
}

func TestLoad_RequiresEnvironmentVariable(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when BARCAMP_BOT_CONFIG is not set")
	}
	if !strings.Contains(err.Error(), EnvConfigPath) {
		t.Errorf("error %q should name %s", err, EnvConfigPath)
	}
}

func TestLoad_WithEnvironmentVariable(t *testing.T) {
	path := writeConfig(t, "bot.yaml", `
homeserver: https://matrix.example.org
username: barcamp-bot
password: hunter2
`)
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Homeserver != "https://matrix.example.org" {
		t.Errorf("homeserver = %q", cfg.Homeserver)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeConfig(t, "bot.yaml", `
homeserver: https://matrix.example.org
username: barcamp-bot
session_stored_file: /var/lib/barcamp-bot/session.json
prefix: "?"
join_on_invite: false
max_concurrent_handlers: 4
log_level: debug
requests_per_second: 2.5
metrics:
  address: 127.0.0.1:9100
tracing:
  endpoint: otel-collector:4318
  insecure: true
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.SessionStoredFile != "/var/lib/barcamp-bot/session.json" {
		t.Errorf("session_stored_file = %q", cfg.SessionStoredFile)
	}
	if cfg.Prefix != "?" {
		t.Errorf("prefix = %q", cfg.Prefix)
	}
	if cfg.JoinOnInvite {
		t.Error("join_on_invite should be false")
	}
	if cfg.MaxConcurrentHandlers != 4 {
		t.Errorf("max_concurrent_handlers = %d", cfg.MaxConcurrentHandlers)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("log level = %v", cfg.SlogLevel())
	}
	if cfg.RequestsPerSecond != 2.5 {
		t.Errorf("requests_per_second = %v", cfg.RequestsPerSecond)
	}
	if cfg.Metrics.Address != "127.0.0.1:9100" {
		t.Errorf("metrics.address = %q", cfg.Metrics.Address)
	}
	if cfg.Tracing.Endpoint != "otel-collector:4318" || !cfg.Tracing.Insecure {
		t.Errorf("tracing = %+v", cfg.Tracing)
	}
	if cfg.Tracing.ServiceName != "barcamp-bot" {
		t.Errorf("tracing.service_name default lost: %q", cfg.Tracing.ServiceName)
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	path := writeConfig(t, "bot.jsonc", `{
  // Bot account
  "homeserver": "https://matrix.example.org",
  "username": "barcamp-bot",
  "password": "hunter2", /* inline */
  "max_concurrent_handlers": 8,
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Username != "barcamp-bot" || cfg.Password != "hunter2" {
		t.Errorf("unexpected credentials: %q / %q", cfg.Username, cfg.Password)
	}
	if cfg.MaxConcurrentHandlers != 8 {
		t.Errorf("max_concurrent_handlers = %d", cfg.MaxConcurrentHandlers)
	}
	if cfg.Prefix != "!" {
		t.Errorf("prefix default lost: %q", cfg.Prefix)
	}
}

func TestLoadFile_ForcesEncryptionSettings(t *testing.T) {
	path := writeConfig(t, "bot.yaml", `
homeserver: https://matrix.example.org
username: barcamp-bot
encryption_enabled: true
ignore_unverified_devices: false
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.EncryptionEnabled {
		t.Error("encryption_enabled must be forced to false")
	}
	if !cfg.IgnoreUnverifiedDevices {
		t.Error("ignore_unverified_devices must be forced to true")
	}
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "bot.yaml", "homeserver: [unterminated\n")
		if _, err := LoadFile(path); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestExpandVariables(t *testing.T) {
	t.Setenv("BARCAMP_TEST_PASSWORD", "from-env")
	t.Setenv("BARCAMP_TEST_HOST", "matrix.example.org")
	t.Setenv("BARCAMP_TEST_UNSET", "")

	path := writeConfig(t, "bot.yaml", `
homeserver: https://${BARCAMP_TEST_HOST}
username: barcamp-bot
password: ${BARCAMP_TEST_PASSWORD}
session_stored_file: ${BARCAMP_TEST_UNSET:-/tmp/session.txt}
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Homeserver != "https://matrix.example.org" {
		t.Errorf("homeserver = %q", cfg.Homeserver)
	}
	if cfg.Password != "from-env" {
		t.Errorf("password = %q", cfg.Password)
	}
	if cfg.SessionStoredFile != "/tmp/session.txt" {
		t.Errorf("session_stored_file = %q", cfg.SessionStoredFile)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("BARCAMP_TEST_VALUE", "env")

	vars := map[string]string{"HOME": "/home/bot"}
	tests := []struct {
		input string
		want  string
	}{
		{"${HOME}/session.txt", "/home/bot/session.txt"},
		{"${BARCAMP_TEST_VALUE}", "env"},
		{"${BARCAMP_TEST_MISSING:-fallback}", "fallback"},
		{"${BARCAMP_TEST_MISSING}", ""},
		{"no variables", "no variables"},
		{"$HOME", "$HOME"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, vars); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestLoadEnvFile(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envPath, []byte("BARCAMP_TEST_DOTENV=from-dotenv\nBARCAMP_TEST_PRESET=from-dotenv\n"), 0600); err != nil {
		t.Fatalf("writing env file: %v", err)
	}
	t.Setenv("BARCAMP_TEST_DOTENV", "")
	os.Unsetenv("BARCAMP_TEST_DOTENV")
	t.Setenv("BARCAMP_TEST_PRESET", "from-process")

	if err := LoadEnvFile(envPath); err != nil {
		t.Fatalf("LoadEnvFile() failed: %v", err)
	}
	if got := os.Getenv("BARCAMP_TEST_DOTENV"); got != "from-dotenv" {
		t.Errorf("BARCAMP_TEST_DOTENV = %q", got)
	}
	if got := os.Getenv("BARCAMP_TEST_PRESET"); got != "from-process" {
		t.Errorf("existing variable overridden: %q", got)
	}

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Error("expected error for missing env file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Homeserver = "https://matrix.example.org"
		cfg.Username = "barcamp-bot"
		return cfg
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing homeserver", func(c *Config) { c.Homeserver = "" }, "homeserver is required"},
		{"homeserver without scheme", func(c *Config) { c.Homeserver = "matrix.example.org" }, "http or https"},
		{"missing username", func(c *Config) { c.Username = "" }, "username is required"},
		{"password and file", func(c *Config) { c.Password = "a"; c.PasswordFile = "/run/secret" }, "mutually exclusive"},
		{"empty session file", func(c *Config) { c.SessionStoredFile = "" }, "session_stored_file"},
		{"empty prefix", func(c *Config) { c.Prefix = "" }, "prefix is required"},
		{"whitespace prefix", func(c *Config) { c.Prefix = "! " }, "whitespace"},
		{"zero handlers", func(c *Config) { c.MaxConcurrentHandlers = 0 }, "max_concurrent_handlers"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
		{"negative rate", func(c *Config) { c.RequestsPerSecond = -1 }, "requests_per_second"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := valid()
			test.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error %q does not contain %q", err, test.wantErr)
			}
		})
	}

	t.Run("aggregates errors", func(t *testing.T) {
		cfg := valid()
		cfg.Homeserver = ""
		cfg.Username = ""
		err := cfg.Validate()
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !strings.Contains(err.Error(), "homeserver") || !strings.Contains(err.Error(), "username") {
			t.Errorf("expected both errors in %q", err)
		}
	})
}
