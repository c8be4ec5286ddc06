// streamchat TUI - A terminal client for Twitch chat.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/streamchat-tui/internal/config"
	"github.com/jeranaias/streamchat-tui/internal/storage"
	"github.com/jeranaias/streamchat-tui/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "config file path (default: platform config dir)")
		channels    = flag.String("channel", "", "channel(s) to join on startup, comma separated")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("streamchat %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: streamchat requires an interactive terminal")
		os.Exit(1)
	}

	if err := run(*configPath, *channels); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, channels string) error {
	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg, configPath)
	if err != nil {
		return err
	}
	defer closeLog()

	// CLI channels override the configured startup list for this run.
	if channels != "" {
		var chats []string
		for _, c := range strings.Split(channels, ",") {
			c = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(c, "#")))
			if c != "" {
				chats = append(chats, c)
			}
		}
		cfg.Chats = chats
	}

	var store *storage.Store
	if cfg.Scrollback.Persist {
		dbPath := cfg.Scrollback.DatabasePath
		if dbPath == "" {
			dbPath = filepath.Join(filepath.Dir(configPath), "chatlog.db")
		}
		store, err = storage.Open(dbPath)
		if err != nil {
			// Persistence is a convenience; run without it rather than die.
			slog.Warn("chat log store unavailable", "path", dbPath, "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	m := app.New(app.Options{
		Config:     cfg,
		ConfigPath: configPath,
		Store:      store,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := m.RunIRC(ctx); err != nil && ctx.Err() == nil {
			slog.Error("irc connection ended", "error", err)
		}
	}()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	watcher, err := config.NewWatcher(configPath, func(next *config.Config) {
		slog.Info("config reloaded")
		p.Send(m.ApplyConfig(next)())
	})
	if err != nil {
		slog.Warn("config watcher unavailable", "error", err)
	} else {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}

// setupLogging points slog at the configured log file. The TUI owns the
// terminal, so without a file only errors go to stderr.
func setupLogging(cfg *config.Config, configPath string) (func(), error) {
	if cfg.Log.File == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelError,
		})))
		return func() {}, nil
	}

	path := cfg.Log.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(configPath), path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var level slog.Level
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return func() { f.Close() }, nil
}
