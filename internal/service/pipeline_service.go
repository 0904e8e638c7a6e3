package service

import (
	"Threadpulse/internal/analysis"
	"Threadpulse/internal/api/config"
	"Threadpulse/internal/api/dto"
	"Threadpulse/internal/model"
	"Threadpulse/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RunSummary 一次分析运行的结果摘要，持久化失败只降级不中断
type RunSummary struct {
	RunID          string
	Status         string
	PostsProcessed int
	PostsSkipped   int
	MetricsSaved   int
	TrendsSaved    int
	TopicsSaved    int
	Errors         []string
	StartedAt      time.Time
	FinishedAt     time.Time
}

type PipelineService interface {
	// RunAnalysis 执行一次全量分析：取数 -> 规整 -> 热度/趋势/聚类 -> 三路落库。
	// 单条产出落库失败不影响其余两路，体现在摘要的 partial 状态里。
	RunAnalysis(ctx context.Context) (*RunSummary, error)
	// GetLatestRun 查询最近一次运行的结果摘要
	GetLatestRun(ctx context.Context) (*dto.RunSummaryDTO, error)
}

type pipelineServiceImpl struct {
	rawPostRepo repository.RawPostRepo
	metricRepo  repository.PostMetricRepo
	trendRepo   repository.KeywordTrendRepo
	topicRepo   repository.TopicRepo
	runRepo     repository.PipelineRunRepo
	extractor   *analysis.KeywordExtractor
	sentiment   *analysis.SentimentScorer
	heat        *analysis.HeatScorer
	cfg         config.PipelineConfig
}

func NewPipelineService(
	rawPostRepo repository.RawPostRepo,
	metricRepo repository.PostMetricRepo,
	trendRepo repository.KeywordTrendRepo,
	topicRepo repository.TopicRepo,
	runRepo repository.PipelineRunRepo,
	extractor *analysis.KeywordExtractor,
	sentiment *analysis.SentimentScorer,
	heat *analysis.HeatScorer,
	cfg config.PipelineConfig,
) PipelineService {
	return &pipelineServiceImpl{
		rawPostRepo: rawPostRepo,
		metricRepo:  metricRepo,
		trendRepo:   trendRepo,
		topicRepo:   topicRepo,
		runRepo:     runRepo,
		extractor:   extractor,
		sentiment:   sentiment,
		heat:        heat,
		cfg:         cfg,
	}
}

func (s *pipelineServiceImpl) RunAnalysis(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}

	start := summary.StartedAt.AddDate(0, 0, -s.cfg.LookbackDays)
	rawPosts, err := s.rawPostRepo.GetPostsByDateRange(ctx, start, summary.StartedAt)
	if err != nil {
		log.ErrorContext(ctx, "拉取原始贴文失败", log.Any("err", err))
		summary.Status = model.RunStatusFailed
		summary.Errors = append(summary.Errors, "fetch: "+err.Error())
		summary.FinishedAt = time.Now()
		s.saveRunRecord(ctx, summary)
		return summary, err
	}

	posts, skipped := analysis.Normalize(ctx, rawPosts, summary.StartedAt)
	summary.PostsProcessed = len(posts)
	summary.PostsSkipped = skipped

	if len(posts) == 0 {
		log.InfoContext(ctx, "窗口内无有效贴文，跳过本次分析", log.String("run_id", summary.RunID))
		summary.Status = model.RunStatusSuccess
		summary.FinishedAt = time.Now()
		s.saveRunRecord(ctx, summary)
		return summary, nil
	}

	for _, p := range posts {
		s.extractor.Annotate(p)
		s.sentiment.Annotate(p)
	}

	heats := make(map[string]analysis.HeatResult, len(posts))
	metrics := make([]*model.PostMetric, 0, len(posts))
	processedAt := time.Now()
	for _, p := range posts {
		h := s.heat.Score(p)
		heats[p.PostID] = h
		metrics = append(metrics, &model.PostMetric{
			PostID:            p.PostID,
			TotalInteractions: h.TotalInteractions,
			HeatDensity:       h.HeatDensity,
			FreshnessScore:    h.FreshnessScore,
			EngagementRate:    h.EngagementRate,
			ViralPotential:    h.ViralPotential,
			ProcessedAt:       processedAt,
		})
	}

	points := analysis.AggregateTrends(posts)
	trends := make([]*model.KeywordTrend, 0, len(points))
	for _, pt := range points {
		trends = append(trends, &model.KeywordTrend{
			Keyword:           pt.Keyword,
			Date:              pt.Date,
			PostCount:         pt.PostCount,
			TotalInteractions: pt.TotalInteractions,
			AverageSentiment:  pt.AverageSentiment,
			MomentumScore:     pt.MomentumScore,
			ProcessedAt:       processedAt,
		})
	}

	topics, assignments := analysis.ClusterTopics(posts, heats, analysis.KeywordMomentum(points), analysis.ClusterConfig{
		K:    s.cfg.ClusterCount,
		Seed: s.cfg.RandomSeed,
	})
	summaries := make([]*model.TopicSummary, 0, len(topics))
	for _, t := range topics {
		summaries = append(summaries, &model.TopicSummary{
			RunID:              summary.RunID,
			TopicID:            t.TopicID,
			TopicName:          t.TopicName,
			TopicKeywords:      t.Keywords,
			PostCount:          t.PostCount,
			AverageHeatDensity: t.AverageHeatDensity,
			TotalInteractions:  t.TotalInteractions,
			DominantSentiment:  t.DominantSentiment,
			TrendingScore:      t.TrendingScore,
			ProcessedAt:        processedAt,
		})
	}
	relations := make([]*model.PostTopicRelation, 0, len(assignments))
	for _, a := range assignments {
		relations = append(relations, &model.PostTopicRelation{
			RunID:          summary.RunID,
			PostID:         a.PostID,
			TopicID:        a.TopicID,
			RelevanceScore: a.RelevanceScore,
		})
	}

	// 三路产出各自落库，互不阻塞也互不牵连
	var metricErr, trendErr, topicErr error
	g := new(errgroup.Group)
	g.Go(func() error {
		metricErr = s.metricRepo.UpsertBatch(ctx, metrics)
		return nil
	})
	g.Go(func() error {
		trendErr = s.trendRepo.UpsertBatch(ctx, trends)
		return nil
	})
	g.Go(func() error {
		topicErr = s.topicRepo.SaveRun(ctx, summaries, relations)
		return nil
	})
	_ = g.Wait()

	if metricErr != nil {
		log.ErrorContext(ctx, "贴文指标落库失败", log.Any("err", metricErr))
		summary.Errors = append(summary.Errors, "metrics: "+metricErr.Error())
	} else {
		summary.MetricsSaved = len(metrics)
	}
	if trendErr != nil {
		log.ErrorContext(ctx, "关键词趋势落库失败", log.Any("err", trendErr))
		summary.Errors = append(summary.Errors, "trends: "+trendErr.Error())
	} else {
		summary.TrendsSaved = len(trends)
	}
	if topicErr != nil {
		log.ErrorContext(ctx, "主题摘要落库失败", log.Any("err", topicErr))
		summary.Errors = append(summary.Errors, "topics: "+topicErr.Error())
	} else {
		summary.TopicsSaved = len(summaries)
	}

	switch len(summary.Errors) {
	case 0:
		summary.Status = model.RunStatusSuccess
	case 3:
		summary.Status = model.RunStatusFailed
	default:
		summary.Status = model.RunStatusPartial
	}
	summary.FinishedAt = time.Now()
	s.saveRunRecord(ctx, summary)

	log.InfoContext(ctx, "分析运行完成",
		log.String("run_id", summary.RunID),
		log.String("status", summary.Status),
		log.Int("posts_processed", summary.PostsProcessed),
		log.Int("posts_skipped", summary.PostsSkipped),
		log.Int("metrics_saved", summary.MetricsSaved),
		log.Int("trends_saved", summary.TrendsSaved),
		log.Int("topics_saved", summary.TopicsSaved),
	)
	return summary, nil
}

func (s *pipelineServiceImpl) GetLatestRun(ctx context.Context) (*dto.RunSummaryDTO, error) {
	run, err := s.runRepo.GetLatest(ctx)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrNoRunAvailable
	}
	return &dto.RunSummaryDTO{
		RunID:          run.RunID,
		Status:         run.Status,
		PostsProcessed: run.PostsProcessed,
		PostsSkipped:   run.PostsSkipped,
		MetricsSaved:   run.MetricsSaved,
		TrendsSaved:    run.TrendsSaved,
		TopicsSaved:    run.TopicsSaved,
		ErrorDetail:    run.ErrorDetail,
		StartedAt:      run.StartedAt.Format(time.RFC3339),
		FinishedAt:     run.FinishedAt.Format(time.RFC3339),
	}, nil
}

// saveRunRecord 运行记录本身落库失败只记日志，不改变运行结果
func (s *pipelineServiceImpl) saveRunRecord(ctx context.Context, summary *RunSummary) {
	run := &model.PipelineRun{
		RunID:          summary.RunID,
		Status:         summary.Status,
		PostsProcessed: summary.PostsProcessed,
		PostsSkipped:   summary.PostsSkipped,
		MetricsSaved:   summary.MetricsSaved,
		TrendsSaved:    summary.TrendsSaved,
		TopicsSaved:    summary.TopicsSaved,
		ErrorDetail:    strings.Join(summary.Errors, "; "),
		StartedAt:      summary.StartedAt,
		FinishedAt:     summary.FinishedAt,
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		log.ErrorContext(ctx, "运行记录落库失败", log.String("run_id", summary.RunID), log.Any("err", err))
	}
}
