package repository

import (
	"Threadpulse/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PipelineRunRepo interface {
	// Create 落库一次运行的结果摘要
	Create(ctx context.Context, run *model.PipelineRun) error
	// GetLatest 取最近一次运行记录，无记录返回 nil
	GetLatest(ctx context.Context) (*model.PipelineRun, error)
	// GetLatestWithTopics 取最近一次产出过主题的运行，供树图 Feed 定位数据
	GetLatestWithTopics(ctx context.Context) (*model.PipelineRun, error)
}

type pipelineRunRepoImpl struct {
	db *gorm.DB
}

func NewPipelineRunRepository(db *gorm.DB) PipelineRunRepo {
	return &pipelineRunRepoImpl{db: db}
}

func (r *pipelineRunRepoImpl) Create(ctx context.Context, run *model.PipelineRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *pipelineRunRepoImpl) GetLatest(ctx context.Context) (*model.PipelineRun, error) {
	var run model.PipelineRun
	err := r.db.WithContext(ctx).
		Order("started_at DESC").
		First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

func (r *pipelineRunRepoImpl) GetLatestWithTopics(ctx context.Context) (*model.PipelineRun, error) {
	var run model.PipelineRun
	err := r.db.WithContext(ctx).
		Where("topics_saved > 0").
		Order("started_at DESC").
		First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}
