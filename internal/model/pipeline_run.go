package model

import (
	"time"
)

const (
	RunStatusSuccess = "success"
	RunStatusPartial = "partial"
	RunStatusFailed  = "failed"
)

// PipelineRun 每次批处理运行的结果摘要
type PipelineRun struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	RunID          string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_run_id" json:"run_id"`
	Status         string    `gorm:"type:varchar(16);not null" json:"status"`
	PostsProcessed int       `gorm:"not null;default:0" json:"posts_processed"`
	PostsSkipped   int       `gorm:"not null;default:0" json:"posts_skipped"`
	MetricsSaved   int       `gorm:"not null;default:0" json:"metrics_saved"`
	TrendsSaved    int       `gorm:"not null;default:0" json:"trends_saved"`
	TopicsSaved    int       `gorm:"not null;default:0" json:"topics_saved"`
	ErrorDetail    string    `gorm:"type:text" json:"error_detail"`
	StartedAt      time.Time `gorm:"not null" json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
}

func (PipelineRun) TableName() string {
	return "pipeline_runs"
}
