// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists conversations to a local SQLite database.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a conversation does not exist.
var ErrNotFound = errors.New("conversation not found")

// =============================================================================
// TYPES
// =============================================================================

// Conversation is a stored chat session.
type Conversation struct {
	ID        string
	Summary   string
	Model     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Messages  []Message
}

// Message is one stored chat message.
type Message struct {
	ID        string
	Role      string // "user", "assistant", "system"
	Content   string
	CreatedAt time.Time

	// Apply outcome, recorded on assistant messages whose directives were
	// applied. Zero values mean no apply happened.
	AppliedCount int
	TotalCount   int
}

// Meta is the listing view of a conversation.
type Meta struct {
	ID           string
	Summary      string
	Model        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	MessageCount int
}

// =============================================================================
// STORE
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS conversations (
	id         TEXT PRIMARY KEY,
	summary    TEXT NOT NULL,
	model      TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	id              TEXT PRIMARY KEY,
	conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
	seq             INTEGER NOT NULL,
	role            TEXT NOT NULL,
	content         TEXT NOT NULL,
	created_at      INTEGER NOT NULL,
	applied_count   INTEGER NOT NULL DEFAULT 0,
	total_count     INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_messages_conversation
	ON messages(conversation_id, seq);
`

// Store persists conversations in a SQLite database.
type Store struct {
	db *sql.DB

	// MaxConversations prunes the oldest conversations beyond this count
	// on save. 0 means unlimited.
	MaxConversations int
}

// Open opens (creating if necessary) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db, MaxConversations: 100}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// SAVE
// =============================================================================

// Save upserts a conversation and rewrites its messages. A conversation
// without an ID gets one assigned.
func (s *Store) Save(conv *Conversation) error {
	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}
	now := time.Now()
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = now
	}
	conv.UpdatedAt = now

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO conversations (id, summary, model, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			summary = excluded.summary,
			model = excluded.model,
			updated_at = excluded.updated_at`,
		conv.ID, conv.Summary, conv.Model,
		conv.CreatedAt.Unix(), conv.UpdatedAt.Unix())
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM messages WHERE conversation_id = ?`, conv.ID); err != nil {
		return err
	}
	for i, m := range conv.Messages {
		id := m.ID
		if id == "" {
			id = uuid.New().String()
		}
		created := m.CreatedAt
		if created.IsZero() {
			created = now
		}
		_, err := tx.Exec(`
			INSERT INTO messages (id, conversation_id, seq, role, content, created_at, applied_count, total_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, conv.ID, i, m.Role, m.Content, created.Unix(), m.AppliedCount, m.TotalCount)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return s.prune()
}

// prune deletes the oldest conversations beyond MaxConversations.
func (s *Store) prune() error {
	if s.MaxConversations <= 0 {
		return nil
	}
	_, err := s.db.Exec(`
		DELETE FROM conversations WHERE id IN (
			SELECT id FROM conversations
			ORDER BY updated_at DESC
			LIMIT -1 OFFSET ?
		)`, s.MaxConversations)
	return err
}

// =============================================================================
// LOAD
// =============================================================================

// Get loads a full conversation by ID.
func (s *Store) Get(id string) (*Conversation, error) {
	conv := &Conversation{ID: id}
	var created, updated int64
	err := s.db.QueryRow(`
		SELECT summary, model, created_at, updated_at
		FROM conversations WHERE id = ?`, id).
		Scan(&conv.Summary, &conv.Model, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	conv.CreatedAt = time.Unix(created, 0)
	conv.UpdatedAt = time.Unix(updated, 0)

	rows, err := s.db.Query(`
		SELECT id, role, content, created_at, applied_count, total_count
		FROM messages WHERE conversation_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m Message
		var at int64
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &at, &m.AppliedCount, &m.TotalCount); err != nil {
			return nil, err
		}
		m.CreatedAt = time.Unix(at, 0)
		conv.Messages = append(conv.Messages, m)
	}
	return conv, rows.Err()
}

// List returns conversation metadata, most recently updated first.
func (s *Store) List() ([]Meta, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.summary, c.model, c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM messages m WHERE m.conversation_id = c.id)
		FROM conversations c
		ORDER BY c.updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Meta
	for rows.Next() {
		var m Meta
		var created, updated int64
		if err := rows.Scan(&m.ID, &m.Summary, &m.Model, &created, &updated, &m.MessageCount); err != nil {
			return nil, err
		}
		m.CreatedAt = time.Unix(created, 0)
		m.UpdatedAt = time.Unix(updated, 0)
		out = append(out, m)
	}
	return out, rows.Err()
}

// Delete removes a conversation and its messages.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
