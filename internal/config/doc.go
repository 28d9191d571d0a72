// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// redraft: TOML file at ~/.redraft/config.toml, built-in defaults,
// REDRAFT_* environment overrides, and validation.
package config
