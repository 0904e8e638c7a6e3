package api

import (
	"Threadpulse/internal/api/handler"
)

// HandlersGroup Handler 聚合，统一交给路由装配
type HandlersGroup struct {
	FeedHandler     *handler.FeedHandler
	PipelineHandler *handler.PipelineHandler
}
