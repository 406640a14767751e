// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable Load reads.
const EnvConfigPath = "BARCAMP_BOT_CONFIG"

// Config is the complete bot configuration.
type Config struct {
	// Homeserver is the base URL of the Matrix homeserver. Required.
	Homeserver string `yaml:"homeserver"`

	// Username is the bot account's localpart or full user ID.
	// Required.
	Username string `yaml:"username"`

	// Password is used only when no valid session file exists. May be
	// empty when PasswordFile is set or a session file is present.
	Password string `yaml:"password"`

	// PasswordFile is read instead of Password when set. "-" reads
	// the first line of stdin.
	PasswordFile string `yaml:"password_file"`

	// SessionStoredFile persists the access token between runs.
	// Default: session.txt
	SessionStoredFile string `yaml:"session_stored_file"`

	// Prefix marks a message as a command. Default: "!"
	Prefix string `yaml:"prefix"`

	// JoinOnInvite makes the bot join every room it is invited to.
	// Default: true
	JoinOnInvite bool `yaml:"join_on_invite"`

	// MaxConcurrentHandlers bounds in-flight message handlers.
	// Default: 16
	MaxConcurrentHandlers int `yaml:"max_concurrent_handlers"`

	// LogLevel is one of debug, info, warn, error. Default: info
	LogLevel string `yaml:"log_level"`

	// RequestsPerSecond throttles homeserver requests. 0 disables.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing configures OpenTelemetry export.
	Tracing TracingConfig `yaml:"tracing"`

	// EncryptionEnabled is always false after loading.
	EncryptionEnabled bool `yaml:"encryption_enabled"`

	// IgnoreUnverifiedDevices is always true after loading.
	IgnoreUnverifiedDevices bool `yaml:"ignore_unverified_devices"`
}

// MetricsConfig configures the Prometheus /metrics listener.
type MetricsConfig struct {
	// Address is the host:port to listen on. Empty disables the
	// listener.
	Address string `yaml:"address"`
}

// TracingConfig configures OTLP/HTTP trace export.
type TracingConfig struct {
	// Endpoint is the OTLP/HTTP collector host:port. Empty disables
	// tracing.
	Endpoint string `yaml:"endpoint"`

	// Insecure sends spans over plain HTTP.
	Insecure bool `yaml:"insecure"`

	// ServiceName is the service.name resource attribute.
	// Default: barcamp-bot
	ServiceName string `yaml:"service_name"`
}

// Default returns the configuration every file is layered onto.
func Default() *Config {
	return &Config{
		SessionStoredFile:       "session.txt",
		Prefix:                  "!",
		JoinOnInvite:            true,
		MaxConcurrentHandlers:   16,
		LogLevel:                "info",
		IgnoreUnverifiedDevices: true,
		Tracing: TracingConfig{
			ServiceName: "barcamp-bot",
		},
	}
}

// Load loads the file named by BARCAMP_BOT_CONFIG.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvConfigPath)
	if configPath == "" {
		return nil, fmt.Errorf("config: %s environment variable not set; "+
			"set it to the path of your config file, or use --config", EnvConfigPath)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path, applies defaults for absent
// keys, expands variables, and forces the encryption settings.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	cfg.EncryptionEnabled = false
	cfg.IgnoreUnverifiedDevices = true

	return cfg, nil
}

// LoadEnvFile sets environment variables from a dotenv file. Variables
// already present in the environment win.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: loading env file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Homeserver = expandVars(c.Homeserver, vars)
	c.Username = expandVars(c.Username, vars)
	c.Password = expandVars(c.Password, vars)
	c.PasswordFile = expandVars(c.PasswordFile, vars)
	c.SessionStoredFile = expandVars(c.SessionStoredFile, vars)
	c.Tracing.Endpoint = expandVars(c.Tracing.Endpoint, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// SlogLevel returns LogLevel as a slog.Level. Unknown values map to
// info; Validate rejects them.
func (c *Config) SlogLevel() slog.Level {
	if level, ok := logLevels[strings.ToLower(c.LogLevel)]; ok {
		return level
	}
	return slog.LevelInfo
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	if c.Homeserver == "" {
		errs = append(errs, fmt.Errorf("homeserver is required"))
	} else if parsed, err := url.Parse(c.Homeserver); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("homeserver must be an http or https URL: %q", c.Homeserver))
	}

	if c.Username == "" {
		errs = append(errs, fmt.Errorf("username is required"))
	}

	if c.Password != "" && c.PasswordFile != "" {
		errs = append(errs, fmt.Errorf("password and password_file are mutually exclusive"))
	}

	if c.SessionStoredFile == "" {
		errs = append(errs, fmt.Errorf("session_stored_file is required"))
	}

	if c.Prefix == "" {
		errs = append(errs, fmt.Errorf("prefix is required"))
	} else if strings.ContainsFunc(c.Prefix, isSpace) {
		errs = append(errs, fmt.Errorf("prefix must not contain whitespace: %q", c.Prefix))
	}

	if c.MaxConcurrentHandlers < 1 {
		errs = append(errs, fmt.Errorf("max_concurrent_handlers must be at least 1, got %d", c.MaxConcurrentHandlers))
	}

	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		errs = append(errs, fmt.Errorf("log_level must be one of: debug, info, warn, error"))
	}

	if c.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("requests_per_second must not be negative"))
	}

	if c.EncryptionEnabled {
		errs = append(errs, fmt.Errorf("encryption is not supported"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}
