package repository

import (
	"Threadpulse/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KeywordTrendRepo interface {
	// UpsertBatch (keyword, date) 已存在则覆写聚合值，重复运行收敛而非翻倍
	UpsertBatch(ctx context.Context, trends []*model.KeywordTrend) error
	// GetTrendsSince 取指定日期之后的趋势点，按关键词、日期升序
	GetTrendsSince(ctx context.Context, since time.Time) ([]*model.KeywordTrend, error)
}

type keywordTrendRepoImpl struct {
	db *gorm.DB
}

func NewKeywordTrendRepository(db *gorm.DB) KeywordTrendRepo {
	return &keywordTrendRepoImpl{db: db}
}

func (r *keywordTrendRepoImpl) UpsertBatch(ctx context.Context, trends []*model.KeywordTrend) error {
	if len(trends) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "keyword"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"post_count",
			"total_interactions",
			"average_sentiment",
			"momentum_score",
			"processed_at",
		}),
	}).CreateInBatches(trends, 200).Error
}

func (r *keywordTrendRepoImpl) GetTrendsSince(ctx context.Context, since time.Time) ([]*model.KeywordTrend, error) {
	trends := make([]*model.KeywordTrend, 0)
	result := r.db.WithContext(ctx).
		Where("date >= ?", since).
		Order("keyword ASC, date ASC").
		Find(&trends)
	if result.Error != nil {
		return nil, result.Error
	}
	return trends, nil
}
