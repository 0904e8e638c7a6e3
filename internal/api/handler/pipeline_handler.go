package handler

import (
	"Threadpulse/internal/api/dto"
	"Threadpulse/internal/pkg/consts"
	"Threadpulse/internal/pkg/redis"
	"Threadpulse/internal/pkg/response"
	"Threadpulse/internal/service"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const runLockExpiration = 30 * time.Minute

type PipelineHandler struct {
	pipelineSvc service.PipelineService
	feedSvc     service.FeedService
}

func NewPipelineHandler(pipelineSvc service.PipelineService, feedSvc service.FeedService) *PipelineHandler {
	return &PipelineHandler{
		pipelineSvc: pipelineSvc,
		feedSvc:     feedSvc,
	}
}

// TriggerRun 手动触发一次分析运行，与定时任务互斥
func (h *PipelineHandler) TriggerRun(c *gin.Context) {
	ctx := c.Request.Context()

	lockValue := uuid.New().String()
	acquired, err := redis.TryLock(ctx, consts.PipelineRunLock, lockValue, runLockExpiration, 1)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !acquired {
		response.Error(c, service.ErrRunInProgress)
		return
	}
	defer redis.UnLock(ctx, consts.PipelineRunLock, lockValue)

	summary, err := h.pipelineSvc.RunAnalysis(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.feedSvc.InvalidateCache(ctx)

	response.Success(c, &dto.RunSummaryDTO{
		RunID:          summary.RunID,
		Status:         summary.Status,
		PostsProcessed: summary.PostsProcessed,
		PostsSkipped:   summary.PostsSkipped,
		MetricsSaved:   summary.MetricsSaved,
		TrendsSaved:    summary.TrendsSaved,
		TopicsSaved:    summary.TopicsSaved,
		ErrorDetail:    strings.Join(summary.Errors, "; "),
		StartedAt:      summary.StartedAt.Format(time.RFC3339),
		FinishedAt:     summary.FinishedAt.Format(time.RFC3339),
	})
}

// GetLatestRun 查询最近一次运行的结果摘要
func (h *PipelineHandler) GetLatestRun(c *gin.Context) {
	summary, err := h.pipelineSvc.GetLatestRun(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}
