// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the barcamp-bot configuration file.
//
// Configuration comes from a single file named by the --config flag
// (via [LoadFile]) or the BARCAMP_BOT_CONFIG environment variable (via
// [Load]). There is no search path. YAML is the native format; files
// ending in .json or .jsonc have comments and trailing commas stripped
// first and are then decoded the same way.
//
// String fields that commonly hold deployment secrets or paths
// (homeserver, username, password, password_file, session_stored_file,
// tracing endpoint) have ${VAR} and ${VAR:-default} expanded from the
// environment. [LoadEnvFile] populates the environment from a .env
// file beforehand without overriding variables already set.
//
// After loading, end-to-end encryption is forced off and unverified
// devices are forced to be ignored: the bot only ever talks in
// unencrypted barcamp rooms. A loaded [Config] is never mutated.
package config
