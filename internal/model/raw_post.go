package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// RawPost 爬虫侧写入的原始贴文，分析管道只读
type RawPost struct {
	PostID    string    `gorm:"primaryKey;type:varchar(64)" json:"post_id"`
	Username  string    `gorm:"type:varchar(128);not null;index:idx_username" json:"username"`
	Content   string    `gorm:"type:text" json:"content"`
	Timestamp time.Time `gorm:"not null;index:idx_timestamp" json:"timestamp"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	Replies   int       `gorm:"not null;default:0" json:"replies"`
	Reposts   int       `gorm:"not null;default:0" json:"reposts"`
	Images    URLList   `gorm:"type:json" json:"images"`
	PostURL   string    `gorm:"type:varchar(512)" json:"post_url"`
	ScrapedAt time.Time `gorm:"not null" json:"scraped_at"`
}

func (RawPost) TableName() string {
	return "raw_posts"
}

// URLList 以 JSON 数组形式落库的字符串列表
type URLList []string

func (l URLList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

func (l *URLList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New(fmt.Sprint("Failed to unmarshal JSON value:", value))
	}
	return json.Unmarshal(bytes, l)
}
