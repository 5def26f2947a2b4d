// Package store persists visitor metrics, post views and contact messages in
// SQLite.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database.
type Store struct {
	db   *sql.DB
	salt string
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,  -- never the raw address
		user_agent TEXT,
		path TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors (timestamp)`,
	`CREATE TABLE IF NOT EXISTS post_views (
		slug TEXT PRIMARY KEY,
		views INTEGER NOT NULL DEFAULT 0,
		last_viewed DATETIME
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		body TEXT NOT NULL,
		hashed_ip TEXT,
		delivered INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	)`,
}

// Open opens (creating if needed) the database at path and applies the schema.
// salt is mixed into IP hashes; use a per-process random value.
func Open(path, salt string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// database/sql would otherwise hand out separate in-memory databases.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
	}

	log.Printf("store: opened %s", path)
	return &Store{db: db, salt: salt}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// HashIP returns a salted, truncated hash of ip. The same ip always maps to
// the same value for the lifetime of the salt.
func (s *Store) HashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + s.salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// TrackVisit records a page view.
func (s *Store) TrackVisit(ctx context.Context, ip, userAgent, path string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, s.HashIP(ip), userAgent, path, at.UTC())
	if err != nil {
		return fmt.Errorf("recording visitor: %w", err)
	}
	return nil
}

// CleanupVisitors deletes visitor rows older than the cutoff and returns how
// many were removed.
func (s *Store) CleanupVisitors(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, olderThan.UTC())
	if err != nil {
		return 0, fmt.Errorf("cleaning up visitors: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// IncrementPostView bumps the view counter of a post.
func (s *Store) IncrementPostView(ctx context.Context, slug string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO post_views (slug, views, last_viewed) VALUES (?, 1, ?)
		ON CONFLICT(slug) DO UPDATE SET views = views + 1, last_viewed = excluded.last_viewed
	`, slug, at.UTC())
	if err != nil {
		return fmt.Errorf("counting view of %s: %w", slug, err)
	}
	return nil
}

// PostViews returns the view count of a post.
func (s *Store) PostViews(ctx context.Context, slug string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(views), 0) FROM post_views WHERE slug = ?`, slug).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("reading views of %s: %w", slug, err)
	}
	return n, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
