package dto

// BubblePointDTO 气泡图单个贴文点：x=新鲜度 y=热度密度 大小=互动量
type BubblePointDTO struct {
	PostID            string  `json:"post_id"`
	Username          string  `json:"username"`
	Content           string  `json:"content"`
	PostURL           string  `json:"post_url"`
	TotalInteractions int     `json:"total_interactions"`
	HeatDensity       float64 `json:"heat_density"`
	FreshnessScore    float64 `json:"freshness_score"`
	EngagementRate    float64 `json:"engagement_rate"`
	ViralPotential    float64 `json:"viral_potential"`
}

// RiverPointDTO 河流图单日数据点
type RiverPointDTO struct {
	Date              string  `json:"date"`
	PostCount         int     `json:"post_count"`
	TotalInteractions int     `json:"total_interactions"`
	AverageSentiment  float64 `json:"average_sentiment"`
}

// KeywordRiverDTO 河流图单条关键词序列，按日期升序
type KeywordRiverDTO struct {
	Keyword       string           `json:"keyword"`
	MomentumScore float64          `json:"momentum_score"`
	Points        []*RiverPointDTO `json:"points"`
}

// TreemapTopicDTO 树图单个主题块
type TreemapTopicDTO struct {
	TopicID            int      `json:"topic_id"`
	TopicName          string   `json:"topic_name"`
	Keywords           []string `json:"keywords"`
	PostCount          int      `json:"post_count"`
	TotalInteractions  int      `json:"total_interactions"`
	AverageHeatDensity float64  `json:"average_heat_density"`
	DominantSentiment  string   `json:"dominant_sentiment"`
	TrendingScore      float64  `json:"trending_score"`
}

// TreemapDTO 树图返回包装，数据来自最近一次产出过主题的运行
type TreemapDTO struct {
	RunID       string             `json:"run_id"`
	ProcessedAt string             `json:"processed_at"`
	Topics      []*TreemapTopicDTO `json:"topics"`
}
