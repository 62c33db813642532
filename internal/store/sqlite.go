package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ppiankov/brandprint/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id           TEXT PRIMARY KEY,
	source_url   TEXT NOT NULL,
	extracted_at TEXT NOT NULL,
	payload      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_profiles_source_url ON profiles(source_url);
`

// SQLiteStore persists profiles as JSON rows in an SQLite file
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: exec schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save writes profile as a new row and returns its UUID
func (s *SQLiteStore) Save(ctx context.Context, profile *model.ExtractedProfile) (string, error) {
	if profile == nil {
		return "", errors.New("store: nil profile")
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("store: encode profile: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, source_url, extracted_at, payload) VALUES (?, ?, ?, ?)`,
		id, profile.SourceURL, profile.ExtractedAt.UTC().Format(time.RFC3339Nano), string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("store: insert profile: %w", err)
	}

	return id, nil
}

// Get loads the profile stored under id
func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.ExtractedProfile, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM profiles WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: query profile: %w", err)
	}

	var profile model.ExtractedProfile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		return nil, fmt.Errorf("store: decode profile %s: %w", id, err)
	}
	return &profile, nil
}

// Count returns the number of stored profiles for sourceURL
func (s *SQLiteStore) Count(ctx context.Context, sourceURL string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles WHERE source_url = ?`, sourceURL).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("store: count profiles: %w", err)
	}
	return n, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
