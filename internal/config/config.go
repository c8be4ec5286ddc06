// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/streamchat-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete streamchat configuration.
type Config struct {
	// Accounts are the platform logins available for sending messages. With
	// no accounts the client connects read-only (anonymous).
	Accounts []Account `toml:"accounts"`

	// Chats are the channels joined on startup.
	Chats []string `toml:"chats"`

	// UI holds presentation settings.
	UI UIConfig `toml:"ui"`

	// Scrollback holds transcript retention settings.
	Scrollback ScrollbackConfig `toml:"scrollback"`

	// Log holds diagnostic logging settings.
	Log LogConfig `toml:"log"`
}

// Account is one platform login.
type Account struct {
	Username string `toml:"username"`
	// Token is the OAuth token, with or without the "oauth:" prefix.
	Token string `toml:"token"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// NaturalScrolling flips the scroll direction of wheel and page input.
	NaturalScrolling bool `toml:"natural_scrolling"`
}

// ScrollbackConfig contains transcript retention settings.
type ScrollbackConfig struct {
	// Limit is the per-channel transcript cap held in memory.
	Limit int `toml:"limit"`
	// Persist enables the on-disk chat log store.
	Persist bool `toml:"persist"`
	// DatabasePath overrides the chat log database location
	// (default: <config dir>/chatlog.db).
	DatabasePath string `toml:"database_path"`
}

// LogConfig contains diagnostic logging settings. The TUI owns the terminal,
// so logs go to a file.
type LogConfig struct {
	// File is the log destination; empty disables logging.
	File string `toml:"file"`
	// Level is one of "debug", "info", "warn", "error".
	Level string `toml:"level"`
}

// =============================================================================
// DEFAULTS AND VALIDATION
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scrollback: ScrollbackConfig{Limit: 1000, Persist: true},
		Log:        LogConfig{Level: "info"},
	}
}

var errNoHome = errors.New("cannot determine config directory")

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", errNoHome, err)
	}
	return filepath.Join(dir, "streamchat", "config.toml"), nil
}

// validate normalizes out-of-range values instead of failing: a chat client
// should come up even with a sloppy config.
func (c *Config) validate() {
	if c.Scrollback.Limit <= 0 {
		c.Scrollback.Limit = 1000
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Log.Level = "info"
	}
}

// PrimaryAccount returns the account used for sending, or false when the
// client should connect anonymously.
func (c *Config) PrimaryAccount() (Account, bool) {
	if len(c.Accounts) == 0 {
		return Account{}, false
	}
	return c.Accounts[0], true
}

// =============================================================================
// LOAD AND SAVE
// =============================================================================

// Load reads the config file at path. When the file does not exist, a
// default config is written there and returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.validate()
	return cfg, nil
}

// Save writes the config atomically with owner-only permissions; the file
// can contain an OAuth token.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
