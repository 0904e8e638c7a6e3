package repository

import (
	"Threadpulse/internal/model"
	"context"

	"gorm.io/gorm"
)

type TopicRepo interface {
	// SaveRun 同一事务内写入一次运行的主题摘要与归属桥表
	SaveRun(ctx context.Context, summaries []*model.TopicSummary, relations []*model.PostTopicRelation) error
	// GetTopicsByRunID 取指定运行的全部主题，按 topic_id 升序
	GetTopicsByRunID(ctx context.Context, runID string) ([]*model.TopicSummary, error)
}

type topicRepoImpl struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) TopicRepo {
	return &topicRepoImpl{db: db}
}

func (r *topicRepoImpl) SaveRun(ctx context.Context, summaries []*model.TopicSummary, relations []*model.PostTopicRelation) error {
	if len(summaries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(summaries, 100).Error; err != nil {
			return err
		}
		if len(relations) == 0 {
			return nil
		}
		return tx.CreateInBatches(relations, 200).Error
	})
}

func (r *topicRepoImpl) GetTopicsByRunID(ctx context.Context, runID string) ([]*model.TopicSummary, error) {
	topics := make([]*model.TopicSummary, 0)
	result := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("topic_id ASC").
		Find(&topics)
	if result.Error != nil {
		return nil, result.Error
	}
	return topics, nil
}
