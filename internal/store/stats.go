package store

import (
	"context"
	"fmt"
	"time"
)

// VisitorMetric is a single tracked page view.
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// PostStat is the view count of a post.
type PostStat struct {
	Slug       string    `json:"slug"`
	Views      int64     `json:"views"`
	LastViewed time.Time `json:"last_viewed"`
}

// Stats summarises traffic and contact activity for the admin dashboard.
type Stats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	TotalPostViews   int64           `json:"total_post_views"`
	TotalMessages    int64           `json:"total_messages"`
	TopPosts         []PostStat      `json:"top_posts"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
	RecentMessages   []Message       `json:"recent_messages"`
}

// Stats computes the dashboard summary relative to now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	stats := &Stats{}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{today}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{weekAgo}},
		{&stats.TotalPostViews, `SELECT COALESCE(SUM(views), 0) FROM post_views`, nil},
		{&stats.TotalMessages, `SELECT COUNT(*) FROM messages`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats query %q: %w", c.query, err)
		}
	}

	var err error
	if stats.TopPosts, err = s.TopPosts(ctx, 10); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	if stats.RecentMessages, err = s.Messages(ctx, 10); err != nil {
		return nil, err
	}
	return stats, nil
}

// TopPosts returns the most viewed posts.
func (s *Store) TopPosts(ctx context.Context, limit int) ([]PostStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, views, last_viewed
		FROM post_views
		ORDER BY views DESC, slug ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing top posts: %w", err)
	}
	defer rows.Close()

	var out []PostStat
	for rows.Next() {
		var p PostStat
		if err := rows.Scan(&p.Slug, &p.Views, &p.LastViewed); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// RecentVisitors returns the latest tracked views, newest first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]VisitorMetric, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing visitors: %w", err)
	}
	defer rows.Close()

	var out []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
