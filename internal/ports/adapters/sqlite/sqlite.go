// Package sqlite persists highlight results and assembled shorts in a local
// SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/forPelevin/repurpose/internal/types"
)

var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS highlight_results (
    highlight_id     TEXT PRIMARY KEY,
    video_id         TEXT NOT NULL,
    title            TEXT NOT NULL DEFAULT '',
    language         TEXT NOT NULL DEFAULT '',
    total_highlights INTEGER NOT NULL,
    payload          TEXT NOT NULL,
    created_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_highlight_results_video ON highlight_results(video_id);

CREATE TABLE IF NOT EXISTS shorts (
    short_id          TEXT PRIMARY KEY,
    original_video_id TEXT NOT NULL,
    highlight_id      TEXT REFERENCES highlight_results(highlight_id) ON DELETE SET NULL,
    platform          TEXT NOT NULL,
    template          TEXT NOT NULL,
    target_sec        REAL NOT NULL,
    estimated_sec     REAL NOT NULL,
    script            TEXT NOT NULL,
    payload           TEXT NOT NULL,
    created_at        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_shorts_video ON shorts(original_video_id);
`

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps PRAGMAs consistent and serializes writers from
	// concurrent pipeline workers.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000"} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) SaveHighlights(ctx context.Context, res types.HighlightResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal highlights: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO highlight_results (highlight_id, video_id, title, language, total_highlights, payload, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(highlight_id) DO UPDATE SET
    video_id = excluded.video_id,
    title = excluded.title,
    language = excluded.language,
    total_highlights = excluded.total_highlights,
    payload = excluded.payload`,
		res.HighlightID, res.VideoID, res.Title, res.Language, res.Summary.TotalHighlights, string(payload), s.timestamp())
	if err != nil {
		return fmt.Errorf("save highlights %s: %w", res.HighlightID, err)
	}
	return nil
}

func (s *Store) GetHighlights(ctx context.Context, highlightID string) (types.HighlightResult, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM highlight_results WHERE highlight_id = ?`, highlightID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return types.HighlightResult{}, fmt.Errorf("highlights %s: %w", highlightID, ErrNotFound)
	}
	if err != nil {
		return types.HighlightResult{}, fmt.Errorf("load highlights %s: %w", highlightID, err)
	}
	var res types.HighlightResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return types.HighlightResult{}, fmt.Errorf("decode highlights %s: %w", highlightID, err)
	}
	return res, nil
}

func (s *Store) SaveShort(ctx context.Context, short types.ShortConfig) error {
	payload, err := json.Marshal(short)
	if err != nil {
		return fmt.Errorf("marshal short: %w", err)
	}
	var highlightID sql.NullString
	if short.HighlightID != "" {
		highlightID = sql.NullString{String: short.HighlightID, Valid: true}
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO shorts (short_id, original_video_id, highlight_id, platform, template, target_sec, estimated_sec, script, payload, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		short.ShortID, short.OriginalVideoID, highlightID, short.TargetPlatform, short.Template,
		short.TargetLength.Seconds(), short.EstimatedDuration.Seconds(), short.Script, string(payload), s.timestamp())
	if err != nil {
		return fmt.Errorf("save short %s: %w", short.ShortID, err)
	}
	return nil
}

// ListShorts returns every short cut from a video, oldest first.
func (s *Store) ListShorts(ctx context.Context, videoID string) ([]types.ShortConfig, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT payload FROM shorts WHERE original_video_id = ? ORDER BY created_at, rowid`, videoID)
	if err != nil {
		return nil, fmt.Errorf("list shorts: %w", err)
	}
	defer rows.Close()

	var out []types.ShortConfig
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan short: %w", err)
		}
		var short types.ShortConfig
		if err := json.Unmarshal([]byte(payload), &short); err != nil {
			return nil, fmt.Errorf("decode short: %w", err)
		}
		out = append(out, short)
	}
	return out, rows.Err()
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}
