// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// SQLite schema for the chat log
const schema = `
-- Metadata table for schema version
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Messages table: one row per chat line
CREATE TABLE IF NOT EXISTS messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    channel TEXT NOT NULL,
    msg_id TEXT,                 -- Twitch message id tag, may be empty
    login TEXT NOT NULL,
    display_name TEXT NOT NULL,
    color TEXT,                  -- #RRGGBB from the color tag
    text TEXT NOT NULL,
    action INTEGER NOT NULL DEFAULT 0,  -- /me message
    system INTEGER NOT NULL DEFAULT 0,  -- client-generated notice
    sent_at INTEGER NOT NULL,    -- Unix milliseconds
    inserted_at INTEGER NOT NULL -- Unix milliseconds
);

CREATE INDEX IF NOT EXISTS idx_messages_channel_sent ON messages(channel, sent_at);
CREATE INDEX IF NOT EXISTS idx_messages_msg_id ON messages(msg_id);
`

const initMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('created_at', strftime('%s', 'now'));
`
