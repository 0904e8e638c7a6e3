package job

import (
	"Threadpulse/internal/pkg/consts"
	"Threadpulse/internal/pkg/logger"
	"Threadpulse/internal/pkg/redis"
	"Threadpulse/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const analysisLockExpiration = 30 * time.Minute

// AnalysisJob 定时全量分析任务，与手动触发共用分布式锁
type AnalysisJob struct {
	pipelineSvc service.PipelineService
	feedSvc     service.FeedService
}

func NewAnalysisJob(pipelineSvc service.PipelineService, feedSvc service.FeedService) *AnalysisJob {
	return &AnalysisJob{
		pipelineSvc: pipelineSvc,
		feedSvc:     feedSvc,
	}
}

func (s *AnalysisJob) Run() {
	traceID := "job-analysis-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	lockValue := uuid.NewString()
	acquired, err := redis.TryLock(ctx, consts.PipelineRunLock, lockValue, analysisLockExpiration, 1)
	if err != nil {
		log.ErrorContext(ctx, "acquire analysis lock error", "err", err)
		return
	}
	if !acquired {
		log.InfoContext(ctx, "analysis already running, skip this tick")
		return
	}
	defer redis.UnLock(ctx, consts.PipelineRunLock, lockValue)

	summary, err := s.pipelineSvc.RunAnalysis(ctx)
	if err != nil {
		log.ErrorContext(ctx, "scheduled analysis run failed", "err", err)
		return
	}

	s.feedSvc.InvalidateCache(ctx)

	log.InfoContext(ctx, "scheduled analysis run finished",
		"run_id", summary.RunID,
		"status", summary.Status,
		"posts_processed", summary.PostsProcessed,
		"topics_saved", summary.TopicsSaved)
}
