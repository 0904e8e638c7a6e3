package model

import (
	"time"
)

// PostMetric 每篇贴文一行的热度指标，按 post_id 幂等覆写
type PostMetric struct {
	ID                uint64    `gorm:"primaryKey" json:"id"`
	PostID            string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_post_id" json:"post_id"`
	TotalInteractions int       `gorm:"not null;default:0" json:"total_interactions"`
	HeatDensity       float64   `gorm:"not null;default:0" json:"heat_density"`
	FreshnessScore    float64   `gorm:"not null;default:0" json:"freshness_score"`
	EngagementRate    float64   `gorm:"not null;default:0" json:"engagement_rate"`
	ViralPotential    float64   `gorm:"not null;default:0" json:"viral_potential"`
	ProcessedAt       time.Time `gorm:"not null" json:"processed_at"`
}

func (PostMetric) TableName() string {
	return "processed_post_metrics"
}
