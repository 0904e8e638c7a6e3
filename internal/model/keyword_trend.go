package model

import (
	"time"
)

// KeywordTrend 关键词按自然日聚合的趋势点，(keyword, date) 唯一
type KeywordTrend struct {
	ID                uint64    `gorm:"primaryKey" json:"id"`
	Keyword           string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_keyword_date" json:"keyword"`
	Date              time.Time `gorm:"type:date;not null;uniqueIndex:idx_keyword_date" json:"date"`
	PostCount         int       `gorm:"not null;default:0" json:"post_count"`
	TotalInteractions int       `gorm:"not null;default:0" json:"total_interactions"`
	AverageSentiment  float64   `gorm:"not null;default:0" json:"average_sentiment"`
	MomentumScore     float64   `gorm:"not null;default:0" json:"momentum_score"`
	ProcessedAt       time.Time `gorm:"not null" json:"processed_at"`
}

func (KeywordTrend) TableName() string {
	return "processed_keyword_trends"
}
