package messages

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"serenade/internal/notes"
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
    id         TEXT NOT NULL,
    sender     TEXT NOT NULL,
    sent_at    TEXT NOT NULL,
    body       TEXT,
    emotion    TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (id, sender, sent_at)
);
CREATE INDEX IF NOT EXISTS idx_messages_sender_sent_at ON messages (sender, sent_at);
`

// Store manages the message corpus backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the message database and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Import inserts messages, normalizing the legacy no-text sentinel ("0",
// 0, empty) to NULL bodies. Existing rows with the same key are replaced.
// Returns the number of rows written.
func (s *Store) Import(ctx context.Context, msgs []notes.RawMessage) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
        INSERT OR REPLACE INTO messages (id, sender, sent_at, body, emotion)
        VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, msg := range msgs {
		if strings.TrimSpace(msg.ID) == "" || strings.TrimSpace(msg.Sender) == "" {
			continue
		}
		var body any
		if text := normalizeBody(msg.Text); text != nil {
			body = *text
		}
		if _, err := stmt.ExecContext(ctx,
			msg.ID,
			msg.Sender,
			msg.SentAt.UTC().Format(time.RFC3339),
			body,
			strings.TrimSpace(msg.Emotion),
		); err != nil {
			return 0, fmt.Errorf("insert message %s: %w", msg.ID, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return written, nil
}

// MessagesByYear returns the sender's messages for one calendar year,
// ordered by send time then id. Messages whose body is NULL are included;
// callers that need text filter with HasText.
func (s *Store) MessagesByYear(ctx context.Context, sender, year string) ([]notes.RawMessage, error) {
	if _, err := strconv.Atoi(year); err != nil {
		return nil, fmt.Errorf("invalid year %q", year)
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT id, sender, sent_at, body, emotion
        FROM messages
        WHERE sender = ? AND sent_at >= ? AND sent_at < ?
        ORDER BY sent_at, id`,
		sender,
		year+"-01-01T00:00:00Z",
		nextYear(year)+"-01-01T00:00:00Z",
	)
	if err != nil {
		return nil, fmt.Errorf("query messages for %s: %w", year, err)
	}
	defer rows.Close()

	var result []notes.RawMessage
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return result, nil
}

// Years returns the distinct calendar years in which the sender has
// messages, ascending.
func (s *Store) Years(ctx context.Context, sender string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT DISTINCT substr(sent_at, 1, 4)
        FROM messages
        WHERE sender = ?
        ORDER BY 1`, sender)
	if err != nil {
		return nil, fmt.Errorf("query years: %w", err)
	}
	defer rows.Close()

	var years []string
	for rows.Next() {
		var year string
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("scan year: %w", err)
		}
		years = append(years, year)
	}
	return years, rows.Err()
}

// Count returns the total number of stored messages.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}

func scanMessage(rows *sql.Rows) (notes.RawMessage, error) {
	var (
		msg    notes.RawMessage
		sentAt string
		body   sql.NullString
	)
	if err := rows.Scan(&msg.ID, &msg.Sender, &sentAt, &body, &msg.Emotion); err != nil {
		return notes.RawMessage{}, fmt.Errorf("scan message: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339, sentAt)
	if err != nil {
		return notes.RawMessage{}, fmt.Errorf("parse sent_at %q: %w", sentAt, err)
	}
	msg.SentAt = parsed
	if body.Valid {
		text := body.String
		msg.Text = &text
	}
	return msg, nil
}

// normalizeBody converts the legacy numeric-zero sentinel and blank bodies
// to nil.
func normalizeBody(text *string) *string {
	if text == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*text)
	if trimmed == "" || trimmed == "0" {
		return nil
	}
	return &trimmed
}

func nextYear(year string) string {
	n, _ := strconv.Atoi(year)
	return strconv.Itoa(n + 1)
}
