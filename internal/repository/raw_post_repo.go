package repository

import (
	"Threadpulse/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RawPostRepo interface {
	// UpsertPost 按 post_id 幂等写入，重复抓取覆盖旧值
	UpsertPost(ctx context.Context, post *model.RawPost) error
	// GetPostsByDateRange 按发布时间窗口拉取原始贴文，时间倒序
	GetPostsByDateRange(ctx context.Context, start, end time.Time) ([]*model.RawPost, error)
	// GetPostsByIDs 按主键批量取贴文（供可视化 Feed 拼接身份字段）
	GetPostsByIDs(ctx context.Context, postIDs []string) ([]*model.RawPost, error)
}

type rawPostRepoImpl struct {
	db *gorm.DB
}

func NewRawPostRepository(db *gorm.DB) RawPostRepo {
	return &rawPostRepoImpl{db: db}
}

func (r *rawPostRepoImpl) UpsertPost(ctx context.Context, post *model.RawPost) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"username",
			"content",
			"timestamp",
			"likes",
			"replies",
			"reposts",
			"images",
			"post_url",
			"scraped_at",
		}),
	}).Create(post).Error
}

func (r *rawPostRepoImpl) GetPostsByDateRange(ctx context.Context, start, end time.Time) ([]*model.RawPost, error) {
	posts := make([]*model.RawPost, 0)
	result := r.db.WithContext(ctx).
		Where("timestamp >= ? AND timestamp <= ?", start, end).
		Order("timestamp DESC").
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

func (r *rawPostRepoImpl) GetPostsByIDs(ctx context.Context, postIDs []string) ([]*model.RawPost, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	posts := make([]*model.RawPost, 0, len(postIDs))
	result := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}
