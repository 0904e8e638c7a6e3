package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// TopicSummary 单次运行内的主题摘要，topic_id 仅在 run 内稳定
type TopicSummary struct {
	ID                 uint64      `gorm:"primaryKey" json:"id"`
	RunID              string      `gorm:"type:varchar(64);not null;index:idx_run_topic" json:"run_id"`
	TopicID            int         `gorm:"not null;index:idx_run_topic" json:"topic_id"`
	TopicName          string      `gorm:"type:varchar(255)" json:"topic_name"`
	TopicKeywords      KeywordList `gorm:"type:json;not null" json:"topic_keywords"`
	PostCount          int         `gorm:"not null;default:0" json:"post_count"`
	AverageHeatDensity float64     `gorm:"not null;default:0" json:"average_heat_density"`
	TotalInteractions  int         `gorm:"not null;default:0" json:"total_interactions"`
	DominantSentiment  string      `gorm:"type:varchar(16);not null;default:'neutral'" json:"dominant_sentiment"`
	TrendingScore      float64     `gorm:"not null;default:0" json:"trending_score"`
	ProcessedAt        time.Time   `gorm:"not null" json:"processed_at"`
}

func (TopicSummary) TableName() string {
	return "processed_topic_summaries"
}

// KeywordList 按代表性降序排列的主题关键词
type KeywordList []string

func (l KeywordList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

func (l *KeywordList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New(fmt.Sprint("Failed to unmarshal JSON value:", value))
	}
	return json.Unmarshal(bytes, l)
}
