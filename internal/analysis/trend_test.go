package analysis

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayUTC(day int) time.Time {
	return time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC)
}

// postsWithKeyword 生成 counts[i] 篇落在第 i 天、携带同一关键词的贴文
func postsWithKeyword(keyword string, startDay int, counts []int) []*NormalizedPost {
	posts := make([]*NormalizedPost, 0)
	for i, n := range counts {
		for j := 0; j < n; j++ {
			posts = append(posts, &NormalizedPost{
				PostID:            fmt.Sprintf("%s-d%d-%d", keyword, i, j),
				Timestamp:         dayUTC(startDay + i).Add(10 * time.Hour),
				TotalInteractions: 5,
				Keywords:          []string{keyword},
			})
		}
	}
	return posts
}

func TestAggregateTrends_EndpointSlopeMomentum(t *testing.T) {
	// 日贴文数 [2, 4, 6] -> (6-2)/2 = 2
	posts := postsWithKeyword("ai", 10, []int{2, 4, 6})

	points := AggregateTrends(posts)

	require.Len(t, points, 3)
	for _, pt := range points {
		assert.Equal(t, "ai", pt.Keyword)
		assert.InDelta(t, 2.0, pt.MomentumScore, 1e-9)
	}
	assert.Equal(t, 2, points[0].PostCount)
	assert.Equal(t, 4, points[1].PostCount)
	assert.Equal(t, 6, points[2].PostCount)
}

func TestAggregateTrends_SingleDayMomentumZero(t *testing.T) {
	posts := postsWithKeyword("ai", 10, []int{5})

	points := AggregateTrends(posts)

	require.Len(t, points, 1)
	assert.Equal(t, 0.0, points[0].MomentumScore)
}

func TestAggregateTrends_MomentumCanBeNegative(t *testing.T) {
	posts := postsWithKeyword("ai", 10, []int{6, 2})

	points := AggregateTrends(posts)

	require.Len(t, points, 2)
	assert.InDelta(t, -4.0, points[0].MomentumScore, 1e-9)
}

func TestAggregateTrends_DuplicateKeywordInPostCountsOnce(t *testing.T) {
	posts := []*NormalizedPost{
		{
			PostID:            "p1",
			Timestamp:         dayUTC(10).Add(3 * time.Hour),
			TotalInteractions: 7,
			Keywords:          []string{"ai", "ai", "模型"},
		},
	}

	points := AggregateTrends(posts)

	require.Len(t, points, 2)
	for _, pt := range points {
		assert.Equal(t, 1, pt.PostCount)
		assert.Equal(t, 7, pt.TotalInteractions)
	}
}

func TestAggregateTrends_AverageSentiment(t *testing.T) {
	posts := []*NormalizedPost{
		{PostID: "p1", Timestamp: dayUTC(10), SentimentScore: 0.8, Keywords: []string{"ai"}},
		{PostID: "p2", Timestamp: dayUTC(10).Add(time.Hour), SentimentScore: -0.2, Keywords: []string{"ai"}},
	}

	points := AggregateTrends(posts)

	require.Len(t, points, 1)
	assert.InDelta(t, 0.3, points[0].AverageSentiment, 1e-9)
}

func TestAggregateTrends_SortedByKeywordThenDate(t *testing.T) {
	posts := append(
		postsWithKeyword("zebra", 10, []int{1, 1}),
		postsWithKeyword("ai", 11, []int{1})...,
	)

	points := AggregateTrends(posts)

	require.Len(t, points, 3)
	assert.Equal(t, "ai", points[0].Keyword)
	assert.Equal(t, "zebra", points[1].Keyword)
	assert.Equal(t, "zebra", points[2].Keyword)
	assert.True(t, points[1].Date.Before(points[2].Date))
}

func TestAggregateTrends_Deterministic(t *testing.T) {
	posts := append(
		postsWithKeyword("ai", 10, []int{2, 3}),
		postsWithKeyword("股票", 10, []int{1, 4})...,
	)

	first := AggregateTrends(posts)
	second := AggregateTrends(posts)
	assert.Equal(t, first, second)
}

func TestAggregateTrends_TwoDayGrowthScenario(t *testing.T) {
	// 两天共 5 篇带 "ai" 的贴文：第一天 2 篇，第二天 3 篇
	posts := postsWithKeyword("ai", 20, []int{2, 3})

	points := AggregateTrends(posts)

	require.Len(t, points, 2)
	assert.Equal(t, 2, points[0].PostCount)
	assert.Equal(t, 3, points[1].PostCount)
	assert.InDelta(t, 1.0, points[0].MomentumScore, 1e-9)
	assert.InDelta(t, 1.0, points[1].MomentumScore, 1e-9)

	momentum := KeywordMomentum(points)
	assert.InDelta(t, 1.0, momentum["ai"], 1e-9)
}

func TestAggregateTrends_BucketsByUTCDay(t *testing.T) {
	// 23:30 UTC 与次日 00:30 UTC 属于不同桶
	posts := []*NormalizedPost{
		{PostID: "p1", Timestamp: time.Date(2026, 8, 10, 23, 30, 0, 0, time.UTC), Keywords: []string{"ai"}},
		{PostID: "p2", Timestamp: time.Date(2026, 8, 11, 0, 30, 0, 0, time.UTC), Keywords: []string{"ai"}},
	}

	points := AggregateTrends(posts)

	require.Len(t, points, 2)
	assert.Equal(t, dayUTC(10), points[0].Date)
	assert.Equal(t, dayUTC(11), points[1].Date)
}
