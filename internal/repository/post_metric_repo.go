package repository

import (
	"Threadpulse/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostMetricRepo interface {
	// UpsertBatch 采用 Upsert 逻辑，post_id 已存在则覆写各项分数
	UpsertBatch(ctx context.Context, metrics []*model.PostMetric) error
	// GetTopByHeat 按热度密度降序取前 N 条
	GetTopByHeat(ctx context.Context, limit int) ([]*model.PostMetric, error)
}

type postMetricRepoImpl struct {
	db *gorm.DB
}

func NewPostMetricRepository(db *gorm.DB) PostMetricRepo {
	return &postMetricRepoImpl{db: db}
}

func (r *postMetricRepoImpl) UpsertBatch(ctx context.Context, metrics []*model.PostMetric) error {
	if len(metrics) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_interactions",
			"heat_density",
			"freshness_score",
			"engagement_rate",
			"viral_potential",
			"processed_at",
		}),
	}).CreateInBatches(metrics, 200).Error
}

func (r *postMetricRepoImpl) GetTopByHeat(ctx context.Context, limit int) ([]*model.PostMetric, error) {
	metrics := make([]*model.PostMetric, 0, limit)
	result := r.db.WithContext(ctx).
		Order("heat_density DESC").
		Limit(limit).
		Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}
