// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists chat history to a local SQLite database so
// scrollback survives restarts.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/streamchat-tui/internal/model"
)

var ErrClosed = errors.New("store is closed")

// Store is the chat log database. Safe for concurrent use; SQLite writes are
// serialized through a single connection.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path, creating parent directories as
// needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	if _, err := db.Exec(initMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize metadata: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s.db == nil {
		return ErrClosed
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Append writes one message to the log. System and historical messages are
// skipped: they either came from the client itself or are already in some
// other instance's log.
func (s *Store) Append(ctx context.Context, m *model.ChatMessage) error {
	if s.db == nil {
		return ErrClosed
	}
	if m.System || m.Historical {
		return nil
	}

	action := 0
	if m.Action {
		action = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (channel, msg_id, login, display_name, color, text, action, sent_at, inserted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Channel, m.MsgID, m.Login, m.DisplayName, m.Color, m.Text,
		action, m.SentAt.UnixMilli(), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// Recent returns up to limit messages for a channel, oldest first. Returned
// messages carry fresh keys and are marked historical.
func (s *Store) Recent(ctx context.Context, channel string, limit int) ([]*model.ChatMessage, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT msg_id, login, display_name, color, text, action, sent_at
		FROM messages
		WHERE channel = ?
		ORDER BY sent_at DESC, id DESC
		LIMIT ?`, channel, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []*model.ChatMessage
	for rows.Next() {
		var (
			m      model.ChatMessage
			action int
			sentAt int64
		)
		if err := rows.Scan(&m.MsgID, &m.Login, &m.DisplayName, &m.Color, &m.Text, &action, &sentAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Key = model.NextKey()
		m.Channel = channel
		m.Action = action != 0
		m.Historical = true
		m.SentAt = time.UnixMilli(sentAt)
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	// Newest-first from the query; callers want chronological order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Prune deletes all but the newest keep messages for a channel.
func (s *Store) Prune(ctx context.Context, channel string, keep int) error {
	if s.db == nil {
		return ErrClosed
	}
	if keep < 0 {
		keep = 0
	}

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM messages
		WHERE channel = ? AND id NOT IN (
			SELECT id FROM messages
			WHERE channel = ?
			ORDER BY sent_at DESC, id DESC
			LIMIT ?
		)`, channel, channel, keep)
	if err != nil {
		return fmt.Errorf("prune messages: %w", err)
	}
	return nil
}

// MarkDeleted records a moderator deletion by message id. The row is kept;
// only the text is redacted.
func (s *Store) MarkDeleted(ctx context.Context, channel, msgID string) error {
	if s.db == nil {
		return ErrClosed
	}
	if msgID == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE messages SET text = '<message deleted>' WHERE channel = ? AND msg_id = ?`,
		channel, msgID)
	if err != nil {
		return fmt.Errorf("mark deleted: %w", err)
	}
	return nil
}
