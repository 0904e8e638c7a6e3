package wire

import (
	"Threadpulse/internal/analysis"
	"Threadpulse/internal/api"
	"Threadpulse/internal/api/config"
	"Threadpulse/internal/api/handler"
	"Threadpulse/internal/job"
	"Threadpulse/internal/pkg/cron"
	"Threadpulse/internal/pkg/kafka"
	"Threadpulse/internal/repository"
	"Threadpulse/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	rawPostRepo := repository.NewRawPostRepository(db)
	metricRepo := repository.NewPostMetricRepository(db)
	trendRepo := repository.NewKeywordTrendRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	runRepo := repository.NewPipelineRunRepository(db)

	extractor, err := analysis.NewKeywordExtractor(cfg.Pipeline.KeywordsPerPost, cfg.Pipeline.ExtraStopwords)
	if err != nil {
		return nil, err
	}
	sentiment := analysis.NewSentimentScorer(cfg.Pipeline.PositiveThreshold, cfg.Pipeline.NegativeThreshold)
	heat := analysis.NewHeatScorer(cfg.Pipeline.DecayRate)

	pipelineService := service.NewPipelineService(
		rawPostRepo, metricRepo, trendRepo, topicRepo, runRepo,
		extractor, sentiment, heat, cfg.Pipeline,
	)
	feedService := service.NewFeedService(metricRepo, trendRepo, topicRepo, runRepo, rawPostRepo)

	handlers := &api.HandlersGroup{
		FeedHandler:     handler.NewFeedHandler(feedService),
		PipelineHandler: handler.NewPipelineHandler(pipelineService, feedService),
	}

	router := api.SetupRouter(handlers)

	analysisJob := job.NewAnalysisJob(pipelineService, feedService)
	cronMgr := cron.NewCronManager(cfg.Pipeline.Cron, analysisJob)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, rawPostRepo)
	if err != nil {
		return nil, err
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
	}, nil
}
