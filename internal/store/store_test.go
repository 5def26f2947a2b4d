package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), "salt")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHashIP(t *testing.T) {
	s := openTestStore(t)

	h := s.HashIP("203.0.113.7")
	assert.Len(t, h, 16)
	assert.Equal(t, h, s.HashIP("203.0.113.7"))
	assert.NotEqual(t, h, s.HashIP("203.0.113.8"))

	other, err := Open(filepath.Join(t.TempDir(), "other.db"), "different")
	require.NoError(t, err)
	defer other.Close()
	assert.NotEqual(t, h, other.HashIP("203.0.113.7"), "hash depends on the salt")
}

func TestTrackVisitAndStats(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	now := time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.TrackVisit(ctx, "1.1.1.1", "ua", "/", now.Add(-time.Hour)))
	require.NoError(t, s.TrackVisit(ctx, "1.1.1.1", "ua", "/blog", now.Add(-2*time.Hour)))
	require.NoError(t, s.TrackVisit(ctx, "2.2.2.2", "ua", "/", now.Add(-3*24*time.Hour)))
	require.NoError(t, s.TrackVisit(ctx, "3.3.3.3", "ua", "/", now.Add(-30*24*time.Hour)))

	require.NoError(t, s.IncrementPostView(ctx, "ai-cli", now))
	require.NoError(t, s.IncrementPostView(ctx, "ai-cli", now))
	require.NoError(t, s.IncrementPostView(ctx, "prisma-sql-migration", now))

	stats, err := s.Stats(ctx, now)
	require.NoError(t, err)

	assert.EqualValues(t, 4, stats.TotalVisitors)
	assert.EqualValues(t, 3, stats.UniqueVisitors)
	assert.EqualValues(t, 2, stats.VisitorsToday)
	assert.EqualValues(t, 3, stats.VisitorsThisWeek)
	assert.EqualValues(t, 3, stats.TotalPostViews)
	require.Len(t, stats.TopPosts, 2)
	assert.Equal(t, "ai-cli", stats.TopPosts[0].Slug)
	assert.EqualValues(t, 2, stats.TopPosts[0].Views)
	require.Len(t, stats.RecentVisitors, 4)
	assert.Equal(t, "/", stats.RecentVisitors[0].Path)
	assert.NotEqual(t, "1.1.1.1", stats.RecentVisitors[0].HashedIP)

	views, err := s.PostViews(ctx, "ai-cli")
	require.NoError(t, err)
	assert.EqualValues(t, 2, views)
	views, err = s.PostViews(ctx, "unknown")
	require.NoError(t, err)
	assert.Zero(t, views)
}

func TestCleanupVisitors(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	now := time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.TrackVisit(ctx, "1.1.1.1", "ua", "/", now.AddDate(-2, 0, 0)))
	require.NoError(t, s.TrackVisit(ctx, "1.1.1.1", "ua", "/", now))

	n, err := s.CleanupVisitors(ctx, now.AddDate(-1, 0, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	visitors, err := s.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, visitors, 1)
}

func TestMessages(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	now := time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveMessage(ctx, Message{ID: "01A", Email: "a@example.dev", Body: "first", CreatedAt: now.Add(-time.Minute)}))
	require.NoError(t, s.SaveMessage(ctx, Message{ID: "01B", Email: "b@example.dev", Body: "second", CreatedAt: now}))
	require.NoError(t, s.MarkDelivered(ctx, "01A"))

	msgs, err := s.Messages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "01B", msgs[0].ID)
	assert.False(t, msgs[0].Delivered)
	assert.True(t, msgs[1].Delivered)
	assert.True(t, msgs[1].CreatedAt.Equal(now.Add(-time.Minute)))

	require.NoError(t, s.DeleteMessage(ctx, "01A"))
	assert.ErrorIs(t, s.DeleteMessage(ctx, "01A"), ErrNotFound)

	msgs, err = s.Messages(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}
