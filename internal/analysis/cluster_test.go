package analysis

import (
	"Threadpulse/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clusterDocs() []*NormalizedPost {
	return []*NormalizedPost{
		{PostID: "t1", TotalInteractions: 10, SentimentLabel: model.SentimentPositive, Keywords: []string{"ai", "模型", "芯片"}},
		{PostID: "t2", TotalInteractions: 20, SentimentLabel: model.SentimentPositive, Keywords: []string{"ai", "模型", "算法"}},
		{PostID: "t3", TotalInteractions: 5, SentimentLabel: model.SentimentNeutral, Keywords: []string{"ai", "芯片", "算法"}},
		{PostID: "f1", TotalInteractions: 40, SentimentLabel: model.SentimentNegative, Keywords: []string{"股票", "基金", "利率"}},
		{PostID: "f2", TotalInteractions: 15, SentimentLabel: model.SentimentNegative, Keywords: []string{"股票", "基金", "加息"}},
	}
}

func TestClusterTopics_EmptyInput(t *testing.T) {
	topics, assignments := ClusterTopics(nil, nil, nil, ClusterConfig{K: 8, Seed: 42})
	assert.Nil(t, topics)
	assert.Nil(t, assignments)
}

func TestClusterTopics_SkipsPostsWithoutKeywords(t *testing.T) {
	posts := []*NormalizedPost{
		{PostID: "p1", Keywords: []string{"ai"}},
		{PostID: "p2"}, // 无关键词，不参与聚类
	}

	topics, assignments := ClusterTopics(posts, nil, nil, ClusterConfig{K: 2, Seed: 42})

	require.Len(t, assignments, 1)
	assert.Equal(t, "p1", assignments[0].PostID)
	require.Len(t, topics, 1)
	assert.Equal(t, 1, topics[0].PostCount)
}

func TestClusterTopics_KShrinksToDocCount(t *testing.T) {
	posts := []*NormalizedPost{
		{PostID: "p1", SentimentLabel: model.SentimentNeutral, Keywords: []string{"ai", "模型"}},
		{PostID: "p2", SentimentLabel: model.SentimentNeutral, Keywords: []string{"股票", "基金"}},
	}

	topics, assignments := ClusterTopics(posts, nil, nil, ClusterConfig{K: 3, Seed: 42})

	assert.Len(t, topics, 2)
	assert.Len(t, assignments, 2)
}

func TestClusterTopics_HardPartition(t *testing.T) {
	posts := clusterDocs()

	topics, assignments := ClusterTopics(posts, nil, nil, ClusterConfig{K: 2, Seed: 42})

	// 每篇贴文恰好归属一个主题，relevance 恒为 1.0
	require.Len(t, assignments, len(posts))
	seen := make(map[string]int)
	validTopics := make(map[int]struct{})
	for _, topic := range topics {
		validTopics[topic.TopicID] = struct{}{}
	}
	for _, a := range assignments {
		seen[a.PostID]++
		assert.Equal(t, 1.0, a.RelevanceScore)
		assert.Contains(t, validTopics, a.TopicID)
	}
	for _, p := range posts {
		assert.Equal(t, 1, seen[p.PostID], "post %s", p.PostID)
	}

	// 成员数与互动量按主题拆分后可加和还原
	postTotal, interactionTotal := 0, 0
	for _, topic := range topics {
		postTotal += topic.PostCount
		interactionTotal += topic.TotalInteractions
	}
	assert.Equal(t, len(posts), postTotal)
	assert.Equal(t, 90, interactionTotal)
}

func TestClusterTopics_DeterministicWithSameSeed(t *testing.T) {
	posts := clusterDocs()
	heats := map[string]HeatResult{
		"t1": {HeatDensity: 2.0},
		"f1": {HeatDensity: 3.0},
	}
	momentum := map[string]float64{"ai": 1.5, "股票": 0.5}
	cfg := ClusterConfig{K: 2, Seed: 42}

	topics1, assignments1 := ClusterTopics(posts, heats, momentum, cfg)
	topics2, assignments2 := ClusterTopics(posts, heats, momentum, cfg)

	assert.Equal(t, topics1, topics2)
	assert.Equal(t, assignments1, assignments2)
}

func TestClusterTopics_TopicStatistics(t *testing.T) {
	// 单主题退化情形，统计量可手工核验
	posts := []*NormalizedPost{
		{PostID: "p1", TotalInteractions: 10, SentimentLabel: model.SentimentPositive, Keywords: []string{"ai", "模型"}},
		{PostID: "p2", TotalInteractions: 20, SentimentLabel: model.SentimentPositive, Keywords: []string{"ai", "模型"}},
		{PostID: "p3", TotalInteractions: 30, SentimentLabel: model.SentimentNegative, Keywords: []string{"ai", "模型"}},
	}
	heats := map[string]HeatResult{
		"p1": {HeatDensity: 1.0},
		"p2": {HeatDensity: 2.0},
		"p3": {HeatDensity: 3.0},
	}

	topics, _ := ClusterTopics(posts, heats, nil, ClusterConfig{K: 1, Seed: 42})

	require.Len(t, topics, 1)
	topic := topics[0]
	assert.Equal(t, 1, topic.TopicID)
	assert.Equal(t, 3, topic.PostCount)
	assert.Equal(t, 60, topic.TotalInteractions)
	assert.InDelta(t, 2.0, topic.AverageHeatDensity, 1e-9)
	assert.Equal(t, model.SentimentPositive, topic.DominantSentiment)
	assert.ElementsMatch(t, []string{"ai", "模型"}, topic.Keywords)
	assert.NotEmpty(t, topic.TopicName)
}

func TestClusterTopics_TrendingScoreBounded(t *testing.T) {
	posts := clusterDocs()
	momentum := map[string]float64{"ai": 100, "股票": -5}

	topics, _ := ClusterTopics(posts, nil, momentum, ClusterConfig{K: 2, Seed: 42})

	require.NotEmpty(t, topics)
	for _, topic := range topics {
		assert.GreaterOrEqual(t, topic.TrendingScore, 0.0)
		assert.LessOrEqual(t, topic.TrendingScore, 1.0)
	}
}

func TestDominantSentiment_TieFavorsNeutral(t *testing.T) {
	votes := map[string]int{
		model.SentimentPositive: 2,
		model.SentimentNegative: 2,
	}
	assert.Equal(t, model.SentimentNeutral, dominantSentiment(votes))
}

func TestTopicName_CategoryMatch(t *testing.T) {
	assert.Equal(t, "科技趋势 - ai", topicName([]string{"ai", "模型"}))
	assert.Equal(t, "热门话题 - 猫咪", topicName([]string{"猫咪"}))
	assert.Equal(t, "未知主题", topicName(nil))
}
