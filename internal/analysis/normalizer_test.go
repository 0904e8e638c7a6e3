package analysis

import (
	"Threadpulse/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_DedupeKeepsLatestScrape(t *testing.T) {
	runTime := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	ts := runTime.Add(-24 * time.Hour)

	raw := []*model.RawPost{
		{PostID: "p1", Username: "alice", Timestamp: ts, Likes: 1, ScrapedAt: runTime.Add(-2 * time.Hour)},
		{PostID: "p1", Username: "alice", Timestamp: ts, Likes: 9, ScrapedAt: runTime.Add(-1 * time.Hour)},
	}

	posts, skipped := Normalize(context.Background(), raw, runTime)

	require.Len(t, posts, 1)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, 9, posts[0].Likes)
}

func TestNormalize_SkipsInvalidRows(t *testing.T) {
	runTime := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	raw := []*model.RawPost{
		{PostID: "", Username: "ghost", Timestamp: runTime},
		{PostID: "p1", Username: "alice"}, // 零值时间
		{PostID: "p2", Username: "bob", Timestamp: runTime.Add(-1 * time.Hour)},
	}

	posts, skipped := Normalize(context.Background(), raw, runTime)

	require.Len(t, posts, 1)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, "p2", posts[0].PostID)
}

func TestNormalize_TotalAndHours(t *testing.T) {
	runTime := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	raw := []*model.RawPost{
		{PostID: "p1", Timestamp: runTime.Add(-36 * time.Hour), Likes: 3, Replies: 2, Reposts: 1},
	}

	posts, _ := Normalize(context.Background(), raw, runTime)

	require.Len(t, posts, 1)
	assert.Equal(t, 6, posts[0].TotalInteractions)
	assert.InDelta(t, 36.0, posts[0].HoursSincePost, 1e-9)
	assert.Equal(t, model.SentimentNeutral, posts[0].SentimentLabel)
}

func TestNormalize_FutureTimestampClampsToZero(t *testing.T) {
	runTime := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	raw := []*model.RawPost{
		{PostID: "p1", Timestamp: runTime.Add(2 * time.Hour)},
	}

	posts, _ := Normalize(context.Background(), raw, runTime)

	require.Len(t, posts, 1)
	assert.Equal(t, 0.0, posts[0].HoursSincePost)
}

func TestNormalize_SortedByTimestampDesc(t *testing.T) {
	runTime := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	raw := []*model.RawPost{
		{PostID: "old", Timestamp: runTime.Add(-48 * time.Hour)},
		{PostID: "new", Timestamp: runTime.Add(-1 * time.Hour)},
		{PostID: "mid", Timestamp: runTime.Add(-24 * time.Hour)},
	}

	posts, _ := Normalize(context.Background(), raw, runTime)

	require.Len(t, posts, 3)
	assert.Equal(t, "new", posts[0].PostID)
	assert.Equal(t, "mid", posts[1].PostID)
	assert.Equal(t, "old", posts[2].PostID)
}
