package api

import (
	"Threadpulse/internal/api/middleware"
	"Threadpulse/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		feedGroup := apiGroup.Group("/feeds")
		{
			feedGroup.GET("/bubble", group.FeedHandler.GetBubbleFeed)
			feedGroup.GET("/river", group.FeedHandler.GetKeywordRiver)
			feedGroup.GET("/treemap", group.FeedHandler.GetTopicTreemap)
		}

		pipelineGroup := apiGroup.Group("/pipeline")
		{
			pipelineGroup.POST("/run", group.PipelineHandler.TriggerRun)
			pipelineGroup.GET("/latest", group.PipelineHandler.GetLatestRun)
		}
	}

	return r
}
