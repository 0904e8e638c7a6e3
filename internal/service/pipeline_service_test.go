package service

import (
	"Threadpulse/internal/analysis"
	"Threadpulse/internal/api/config"
	"Threadpulse/internal/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRawPostRepo struct {
	posts []*model.RawPost
	err   error
}

func (f *fakeRawPostRepo) UpsertPost(ctx context.Context, post *model.RawPost) error { return nil }
func (f *fakeRawPostRepo) GetPostsByDateRange(ctx context.Context, start, end time.Time) ([]*model.RawPost, error) {
	return f.posts, f.err
}
func (f *fakeRawPostRepo) GetPostsByIDs(ctx context.Context, postIDs []string) ([]*model.RawPost, error) {
	return nil, nil
}

type fakeMetricRepo struct {
	saved []*model.PostMetric
	err   error
}

func (f *fakeMetricRepo) UpsertBatch(ctx context.Context, metrics []*model.PostMetric) error {
	if f.err != nil {
		return f.err
	}
	f.saved = metrics
	return nil
}
func (f *fakeMetricRepo) GetTopByHeat(ctx context.Context, limit int) ([]*model.PostMetric, error) {
	return nil, nil
}

type fakeTrendRepo struct {
	saved []*model.KeywordTrend
	err   error
}

func (f *fakeTrendRepo) UpsertBatch(ctx context.Context, trends []*model.KeywordTrend) error {
	if f.err != nil {
		return f.err
	}
	f.saved = trends
	return nil
}
func (f *fakeTrendRepo) GetTrendsSince(ctx context.Context, since time.Time) ([]*model.KeywordTrend, error) {
	return nil, nil
}

type fakeTopicRepo struct {
	summaries []*model.TopicSummary
	relations []*model.PostTopicRelation
	err       error
}

func (f *fakeTopicRepo) SaveRun(ctx context.Context, summaries []*model.TopicSummary, relations []*model.PostTopicRelation) error {
	if f.err != nil {
		return f.err
	}
	f.summaries = summaries
	f.relations = relations
	return nil
}
func (f *fakeTopicRepo) GetTopicsByRunID(ctx context.Context, runID string) ([]*model.TopicSummary, error) {
	return f.summaries, nil
}

type fakeRunRepo struct {
	created []*model.PipelineRun
	err     error
}

func (f *fakeRunRepo) Create(ctx context.Context, run *model.PipelineRun) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, run)
	return nil
}
func (f *fakeRunRepo) GetLatest(ctx context.Context) (*model.PipelineRun, error) {
	if len(f.created) == 0 {
		return nil, nil
	}
	return f.created[len(f.created)-1], nil
}
func (f *fakeRunRepo) GetLatestWithTopics(ctx context.Context) (*model.PipelineRun, error) {
	return nil, nil
}

func testPipelineConfig() config.PipelineConfig {
	return config.PipelineConfig{
		DecayRate:         0.1,
		ClusterCount:      4,
		RandomSeed:        42,
		KeywordsPerPost:   10,
		LookbackDays:      7,
		PositiveThreshold: 0.1,
		NegativeThreshold: -0.1,
	}
}

func newTestPipeline(t *testing.T, rawRepo *fakeRawPostRepo, metricRepo *fakeMetricRepo, trendRepo *fakeTrendRepo, topicRepo *fakeTopicRepo, runRepo *fakeRunRepo) PipelineService {
	t.Helper()
	cfg := testPipelineConfig()
	extractor, err := analysis.NewKeywordExtractor(cfg.KeywordsPerPost, nil)
	require.NoError(t, err)
	return NewPipelineService(
		rawRepo, metricRepo, trendRepo, topicRepo, runRepo,
		extractor,
		analysis.NewSentimentScorer(cfg.PositiveThreshold, cfg.NegativeThreshold),
		analysis.NewHeatScorer(cfg.DecayRate),
		cfg,
	)
}

func scrapedFixture(now time.Time) []*model.RawPost {
	return []*model.RawPost{
		{PostID: "p1", Username: "alice", Content: "golang backend performance is amazing #golang", Timestamp: now.Add(-2 * time.Hour), Likes: 30, Replies: 5, Reposts: 2, ScrapedAt: now},
		{PostID: "p2", Username: "bob", Content: "golang concurrency rocks", Timestamp: now.Add(-26 * time.Hour), Likes: 10, Replies: 1, Reposts: 0, ScrapedAt: now},
		{PostID: "p3", Username: "carol", Content: "股票 市场 失望 跌", Timestamp: now.Add(-3 * time.Hour), Likes: 4, Replies: 4, Reposts: 1, ScrapedAt: now},
		{PostID: "", Username: "ghost", Content: "broken row", Timestamp: now, ScrapedAt: now},
	}
}

func TestRunAnalysis_Success(t *testing.T) {
	now := time.Now()
	rawRepo := &fakeRawPostRepo{posts: scrapedFixture(now)}
	metricRepo := &fakeMetricRepo{}
	trendRepo := &fakeTrendRepo{}
	topicRepo := &fakeTopicRepo{}
	runRepo := &fakeRunRepo{}

	svc := newTestPipeline(t, rawRepo, metricRepo, trendRepo, topicRepo, runRepo)
	summary, err := svc.RunAnalysis(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.RunStatusSuccess, summary.Status)
	assert.Equal(t, 3, summary.PostsProcessed)
	assert.Equal(t, 1, summary.PostsSkipped)
	assert.Equal(t, 3, summary.MetricsSaved)
	assert.Positive(t, summary.TrendsSaved)
	assert.Positive(t, summary.TopicsSaved)
	assert.Empty(t, summary.Errors)

	// 每篇有效贴文产出一行指标
	require.Len(t, metricRepo.saved, 3)
	for _, m := range metricRepo.saved {
		assert.NotEmpty(t, m.PostID)
		assert.GreaterOrEqual(t, m.HeatDensity, 0.0)
	}

	// 主题归属覆盖所有进入聚类的贴文
	assert.Equal(t, summary.TopicsSaved, len(topicRepo.summaries))
	for _, r := range topicRepo.relations {
		assert.Equal(t, summary.RunID, r.RunID)
		assert.Equal(t, 1.0, r.RelevanceScore)
	}

	// 运行记录落库
	require.Len(t, runRepo.created, 1)
	assert.Equal(t, summary.RunID, runRepo.created[0].RunID)
	assert.Equal(t, model.RunStatusSuccess, runRepo.created[0].Status)
}

func TestRunAnalysis_FetchFailure(t *testing.T) {
	rawRepo := &fakeRawPostRepo{err: errors.New("connection refused")}
	runRepo := &fakeRunRepo{}

	svc := newTestPipeline(t, rawRepo, &fakeMetricRepo{}, &fakeTrendRepo{}, &fakeTopicRepo{}, runRepo)
	summary, err := svc.RunAnalysis(context.Background())

	require.Error(t, err)
	assert.Equal(t, model.RunStatusFailed, summary.Status)
	require.Len(t, runRepo.created, 1)
	assert.Contains(t, runRepo.created[0].ErrorDetail, "fetch")
}

func TestRunAnalysis_PartialFailureIsolatesStages(t *testing.T) {
	now := time.Now()
	rawRepo := &fakeRawPostRepo{posts: scrapedFixture(now)}
	metricRepo := &fakeMetricRepo{}
	trendRepo := &fakeTrendRepo{err: errors.New("deadlock")}
	topicRepo := &fakeTopicRepo{}
	runRepo := &fakeRunRepo{}

	svc := newTestPipeline(t, rawRepo, metricRepo, trendRepo, topicRepo, runRepo)
	summary, err := svc.RunAnalysis(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.RunStatusPartial, summary.Status)
	assert.Equal(t, 0, summary.TrendsSaved)
	assert.Positive(t, summary.MetricsSaved)
	assert.Positive(t, summary.TopicsSaved)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "trends")
}

func TestRunAnalysis_AllStagesFailed(t *testing.T) {
	now := time.Now()
	rawRepo := &fakeRawPostRepo{posts: scrapedFixture(now)}
	boom := errors.New("db down")
	runRepo := &fakeRunRepo{}

	svc := newTestPipeline(t, rawRepo, &fakeMetricRepo{err: boom}, &fakeTrendRepo{err: boom}, &fakeTopicRepo{err: boom}, runRepo)
	summary, err := svc.RunAnalysis(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, summary.Status)
	assert.Len(t, summary.Errors, 3)
}

func TestRunAnalysis_EmptyWindow(t *testing.T) {
	rawRepo := &fakeRawPostRepo{}
	runRepo := &fakeRunRepo{}

	svc := newTestPipeline(t, rawRepo, &fakeMetricRepo{}, &fakeTrendRepo{}, &fakeTopicRepo{}, runRepo)
	summary, err := svc.RunAnalysis(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.RunStatusSuccess, summary.Status)
	assert.Equal(t, 0, summary.PostsProcessed)
	require.Len(t, runRepo.created, 1)
}

func TestGetLatestRun(t *testing.T) {
	runRepo := &fakeRunRepo{}
	svc := newTestPipeline(t, &fakeRawPostRepo{}, &fakeMetricRepo{}, &fakeTrendRepo{}, &fakeTopicRepo{}, runRepo)

	_, err := svc.GetLatestRun(context.Background())
	assert.ErrorIs(t, err, ErrNoRunAvailable)

	_, err = svc.RunAnalysis(context.Background())
	require.NoError(t, err)

	got, err := svc.GetLatestRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusSuccess, got.Status)
}
