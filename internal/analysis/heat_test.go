package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeatScore_KnownValues(t *testing.T) {
	scorer := NewHeatScorer(0.1)

	p := &NormalizedPost{
		Likes:          6,
		Replies:        3,
		Reposts:        1,
		HoursSincePost: 24,
	}

	got := scorer.Score(p)

	assert.Equal(t, 10, got.TotalInteractions)

	wantDecay := math.Exp(-0.1)
	assert.InDelta(t, wantDecay, got.FreshnessScore, 1e-9)
	// 无词元时长度因子为 0
	assert.InDelta(t, math.Log1p(10)*wantDecay, got.HeatDensity, 1e-9)
	// 词元数为 0 时按 1 兜底
	assert.InDelta(t, 10.0, got.EngagementRate, 1e-9)
}

func TestHeatScore_LengthFactorCapped(t *testing.T) {
	scorer := NewHeatScorer(0.1)

	short := scorer.Score(&NormalizedPost{Likes: 10, ContentLength: 5})
	long := scorer.Score(&NormalizedPost{Likes: 10, ContentLength: 10000})

	// 长文有加成但受上限约束
	assert.Greater(t, long.HeatDensity, short.HeatDensity)
	assert.LessOrEqual(t, long.HeatDensity, math.Log1p(10)*1.5+1e-9)
}

func TestHeatScore_FreshnessDecaysMonotonically(t *testing.T) {
	scorer := NewHeatScorer(0.1)

	prev := scorer.Score(&NormalizedPost{Likes: 5, HoursSincePost: 0})
	assert.InDelta(t, 1.0, prev.FreshnessScore, 1e-9)

	for _, hours := range []float64{6, 24, 72, 168} {
		cur := scorer.Score(&NormalizedPost{Likes: 5, HoursSincePost: hours})
		assert.Less(t, cur.FreshnessScore, prev.FreshnessScore, "hours=%v", hours)
		assert.Less(t, cur.HeatDensity, prev.HeatDensity, "hours=%v", hours)
		prev = cur
	}
}

func TestHeatScore_ViralPotentialBounded(t *testing.T) {
	scorer := NewHeatScorer(0.1)

	cases := []*NormalizedPost{
		{},
		{Likes: 1000000, SentimentScore: 1},
		{Likes: 3, HoursSincePost: 500, SentimentScore: -0.9},
	}
	for _, p := range cases {
		got := scorer.Score(p)
		assert.GreaterOrEqual(t, got.ViralPotential, 0.0)
		assert.LessOrEqual(t, got.ViralPotential, 1.0)
	}
}

func TestHeatScore_EngagementRatePerToken(t *testing.T) {
	scorer := NewHeatScorer(0.1)

	got := scorer.Score(&NormalizedPost{Likes: 8, Replies: 2, ContentLength: 5})
	assert.InDelta(t, 2.0, got.EngagementRate, 1e-9)
}
