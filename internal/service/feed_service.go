package service

import (
	"Threadpulse/internal/api/dto"
	"Threadpulse/internal/model"
	"Threadpulse/internal/pkg/consts"
	"Threadpulse/internal/pkg/redis"
	"Threadpulse/internal/pkg/util"
	"Threadpulse/internal/repository"
	"context"
	log "log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

const (
	feedCacheTTL          = 10 * time.Minute
	bubbleContentMaxRunes = 120
)

type FeedService interface {
	// GetBubbleFeed 气泡图：按热度密度降序取贴文指标，拼上贴文身份字段
	GetBubbleFeed(ctx context.Context, limit int) ([]*dto.BubblePointDTO, error)
	// GetKeywordRiver 河流图：近 N 天趋势点按关键词分组，互动量最高的关键词优先
	GetKeywordRiver(ctx context.Context, days int) ([]*dto.KeywordRiverDTO, error)
	// GetTopicTreemap 树图：最近一次产出过主题的运行的主题摘要
	GetTopicTreemap(ctx context.Context) (*dto.TreemapDTO, error)
	// InvalidateCache 分析运行结束后失效全部 Feed 缓存
	InvalidateCache(ctx context.Context)
}

type feedServiceImpl struct {
	metricRepo  repository.PostMetricRepo
	trendRepo   repository.KeywordTrendRepo
	topicRepo   repository.TopicRepo
	runRepo     repository.PipelineRunRepo
	rawPostRepo repository.RawPostRepo
}

func NewFeedService(
	metricRepo repository.PostMetricRepo,
	trendRepo repository.KeywordTrendRepo,
	topicRepo repository.TopicRepo,
	runRepo repository.PipelineRunRepo,
	rawPostRepo repository.RawPostRepo,
) FeedService {
	return &feedServiceImpl{
		metricRepo:  metricRepo,
		trendRepo:   trendRepo,
		topicRepo:   topicRepo,
		runRepo:     runRepo,
		rawPostRepo: rawPostRepo,
	}
}

func (s *feedServiceImpl) GetBubbleFeed(ctx context.Context, limit int) ([]*dto.BubblePointDTO, error) {
	if limit <= 0 {
		limit = consts.BubbleFeedDefaultLimit
	}
	key := consts.FeedBubbleKey + strconv.Itoa(limit)
	if val, err := redis.GetValue(ctx, key); err == nil && val != "" {
		var res []*dto.BubblePointDTO
		if json.Unmarshal([]byte(val), &res) == nil {
			return res, nil
		}
	}

	metrics, err := s.metricRepo.GetTopByHeat(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(metrics) == 0 {
		return []*dto.BubblePointDTO{}, nil
	}

	postIDs := make([]string, 0, len(metrics))
	for _, m := range metrics {
		postIDs = append(postIDs, m.PostID)
	}
	posts, err := s.rawPostRepo.GetPostsByIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	postByID := make(map[string]*model.RawPost, len(posts))
	for _, p := range posts {
		postByID[p.PostID] = p
	}

	res := make([]*dto.BubblePointDTO, 0, len(metrics))
	for _, m := range metrics {
		point := &dto.BubblePointDTO{}
		_ = copier.Copy(point, m)
		if p, ok := postByID[m.PostID]; ok {
			point.Username = p.Username
			point.Content = truncateRunes(p.Content, bubbleContentMaxRunes)
			point.PostURL = p.PostURL
		}
		res = append(res, point)
	}

	s.cache(ctx, key, res)
	return res, nil
}

func (s *feedServiceImpl) GetKeywordRiver(ctx context.Context, days int) ([]*dto.KeywordRiverDTO, error) {
	if days <= 0 {
		return nil, ErrParamInvalid
	}
	key := consts.FeedRiverKey + strconv.Itoa(days)
	if val, err := redis.GetValue(ctx, key); err == nil && val != "" {
		var res []*dto.KeywordRiverDTO
		if json.Unmarshal([]byte(val), &res) == nil {
			return res, nil
		}
	}

	since := util.GetMidnight(time.Now()).AddDate(0, 0, -days)
	trends, err := s.trendRepo.GetTrendsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	// 趋势点已按关键词、日期升序，同一关键词连续出现
	byKeyword := make(map[string]*dto.KeywordRiverDTO)
	order := make([]string, 0)
	for _, t := range trends {
		river, ok := byKeyword[t.Keyword]
		if !ok {
			river = &dto.KeywordRiverDTO{Keyword: t.Keyword}
			byKeyword[t.Keyword] = river
			order = append(order, t.Keyword)
		}
		river.MomentumScore = t.MomentumScore
		river.Points = append(river.Points, &dto.RiverPointDTO{
			Date:              t.Date.Format(time.DateOnly),
			PostCount:         t.PostCount,
			TotalInteractions: t.TotalInteractions,
			AverageSentiment:  t.AverageSentiment,
		})
	}

	res := make([]*dto.KeywordRiverDTO, 0, len(order))
	for _, kw := range order {
		res = append(res, byKeyword[kw])
	}
	sort.SliceStable(res, func(i, j int) bool {
		return riverWeight(res[i]) > riverWeight(res[j])
	})
	if len(res) > consts.RiverFeedMaxKeywords {
		res = res[:consts.RiverFeedMaxKeywords]
	}

	s.cache(ctx, key, res)
	return res, nil
}

func (s *feedServiceImpl) GetTopicTreemap(ctx context.Context) (*dto.TreemapDTO, error) {
	if val, err := redis.GetValue(ctx, consts.FeedTreemapKey); err == nil && val != "" {
		var res dto.TreemapDTO
		if json.Unmarshal([]byte(val), &res) == nil {
			return &res, nil
		}
	}

	run, err := s.runRepo.GetLatestWithTopics(ctx)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrNoRunAvailable
	}

	topics, err := s.topicRepo.GetTopicsByRunID(ctx, run.RunID)
	if err != nil {
		return nil, err
	}

	res := &dto.TreemapDTO{
		RunID:  run.RunID,
		Topics: make([]*dto.TreemapTopicDTO, 0, len(topics)),
	}
	for _, t := range topics {
		res.ProcessedAt = t.ProcessedAt.Format(time.RFC3339)
		res.Topics = append(res.Topics, &dto.TreemapTopicDTO{
			TopicID:            t.TopicID,
			TopicName:          t.TopicName,
			Keywords:           t.TopicKeywords,
			PostCount:          t.PostCount,
			TotalInteractions:  t.TotalInteractions,
			AverageHeatDensity: t.AverageHeatDensity,
			DominantSentiment:  t.DominantSentiment,
			TrendingScore:      t.TrendingScore,
		})
	}
	sort.SliceStable(res.Topics, func(i, j int) bool {
		return res.Topics[i].TotalInteractions > res.Topics[j].TotalInteractions
	})

	s.cache(ctx, consts.FeedTreemapKey, res)
	return res, nil
}

func (s *feedServiceImpl) InvalidateCache(ctx context.Context) {
	for _, prefix := range []string{consts.FeedBubbleKey, consts.FeedRiverKey, consts.FeedTreemapKey} {
		if err := redis.DeleteByPrefix(ctx, prefix); err != nil {
			log.WarnContext(ctx, "Feed缓存失效失败", log.String("prefix", prefix), log.Any("err", err))
		}
	}
}

// cache 缓存写失败不影响返回
func (s *feedServiceImpl) cache(ctx context.Context, key string, value interface{}) {
	bytes, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err = redis.SetWithExpiration(ctx, key, string(bytes), feedCacheTTL); err != nil {
		log.WarnContext(ctx, "Feed缓存写入失败", log.String("key", key), log.Any("err", err))
	}
}

// riverWeight 关键词排序权重：窗口内互动量求和
func riverWeight(river *dto.KeywordRiverDTO) int {
	total := 0
	for _, p := range river.Points {
		total += p.TotalInteractions
	}
	return total
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
