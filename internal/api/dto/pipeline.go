package dto

// RunSummaryDTO 一次分析运行的结果摘要
type RunSummaryDTO struct {
	RunID          string `json:"run_id"`
	Status         string `json:"status"`
	PostsProcessed int    `json:"posts_processed"`
	PostsSkipped   int    `json:"posts_skipped"`
	MetricsSaved   int    `json:"metrics_saved"`
	TrendsSaved    int    `json:"trends_saved"`
	TopicsSaved    int    `json:"topics_saved"`
	ErrorDetail    string `json:"error_detail"`
	StartedAt      string `json:"started_at"`
	FinishedAt     string `json:"finished_at"`
}
