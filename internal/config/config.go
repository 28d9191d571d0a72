// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for redraft.
//
// Configuration lives in ~/.redraft/config.toml, with built-in defaults
// and environment variable overrides applied on top.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete redraft configuration.
type Config struct {
	Chat    ChatConfig    `toml:"chat"`
	Apply   ApplyConfig   `toml:"apply"`
	History HistoryConfig `toml:"history"`
	UI      UIConfig      `toml:"ui"`
}

// ChatConfig configures the connection to the chat service.
type ChatConfig struct {
	// BaseURL is the chat service endpoint.
	BaseURL string `toml:"base_url"`
	// Model is the default model name.
	Model string `toml:"model"`
	// TimeoutSecs is the non-streaming request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
	// RequestsPerMinute caps outgoing requests. 0 disables the limiter.
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// ApplyConfig configures how edit directives are applied to files.
type ApplyConfig struct {
	// Root is the directory relative directive paths resolve against.
	// Empty means the current working directory.
	Root string `toml:"root"`
	// Watch reloads open documents when their files change on disk.
	Watch bool `toml:"watch"`
	// AutoSave persists touched documents immediately after each batch.
	// When false the caller confirms before saving.
	AutoSave bool `toml:"auto_save"`
	// Backup keeps a .bak copy of each file's previous content on save.
	Backup bool `toml:"backup"`
}

// HistoryConfig configures conversation persistence.
type HistoryConfig struct {
	// Enabled controls whether conversations are saved at all.
	Enabled bool `toml:"enabled"`
	// Path is the SQLite database location. Empty means
	// ~/.redraft/history.db.
	Path string `toml:"path"`
	// MaxConversations prunes the oldest conversations beyond this count.
	// 0 means unlimited.
	MaxConversations int `toml:"max_conversations"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Theme selects the glamour markdown style: auto, dark, or light.
	Theme string `toml:"theme"`
	// Markdown renders assistant replies through glamour when true.
	Markdown bool `toml:"markdown"`
	// SyntaxTheme is the chroma style used for directive previews.
	SyntaxTheme string `toml:"syntax_theme"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Chat: ChatConfig{
			BaseURL:           "http://127.0.0.1:11434",
			Model:             "qwen2.5-coder:14b",
			TimeoutSecs:       30,
			RequestsPerMinute: 30,
		},
		Apply: ApplyConfig{
			Root:     "",
			Watch:    true,
			AutoSave: true,
			Backup:   false,
		},
		History: HistoryConfig{
			Enabled:          true,
			MaxConversations: 100,
		},
		UI: UIConfig{
			Theme:       "auto",
			Markdown:    true,
			SyntaxTheme: "monokai",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the redraft configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".redraft"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// HistoryPath returns the effective history database path.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the config file, falling back to defaults when it does not
// exist. Environment overrides are applied last, then the result is
// validated.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadFrom(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFrom decodes a TOML config file over the given config.
func LoadFrom(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// Save writes the config to its default location.
func Save(cfg *Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies REDRAFT_* environment variables over the
// loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("REDRAFT_CHAT_URL"); v != "" {
		c.Chat.BaseURL = v
	}
	if v := os.Getenv("REDRAFT_MODEL"); v != "" {
		c.Chat.Model = v
	}
	if v := os.Getenv("REDRAFT_ROOT"); v != "" {
		c.Apply.Root = v
	}
	if v := os.Getenv("REDRAFT_HISTORY"); v != "" {
		c.History.Enabled = v == "1" || v == "true"
	}
	if v := os.Getenv("REDRAFT_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Chat.RequestsPerMinute = n
		}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Chat.BaseURL == "" {
		return fmt.Errorf("chat.base_url must not be empty")
	}
	if _, err := url.Parse(c.Chat.BaseURL); err != nil {
		return fmt.Errorf("chat.base_url is not a valid URL: %w", err)
	}
	if c.Chat.Model == "" {
		return fmt.Errorf("chat.model must not be empty")
	}
	if c.Chat.TimeoutSecs <= 0 {
		return fmt.Errorf("chat.timeout_secs must be positive")
	}
	if c.Chat.RequestsPerMinute < 0 {
		return fmt.Errorf("chat.requests_per_minute must not be negative")
	}
	if c.History.MaxConversations < 0 {
		return fmt.Errorf("history.max_conversations must not be negative")
	}
	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("ui.theme must be auto, dark, or light")
	}
	return nil
}
