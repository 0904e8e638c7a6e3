package handler

import (
	"Threadpulse/internal/pkg/consts"
	"Threadpulse/internal/pkg/response"
	"Threadpulse/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedSvc service.FeedService
}

func NewFeedHandler(feedSvc service.FeedService) *FeedHandler {
	return &FeedHandler{
		feedSvc: feedSvc,
	}
}

// GetBubbleFeed 获取气泡图数据，limit 可选
func (h *FeedHandler) GetBubbleFeed(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(consts.BubbleFeedDefaultLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	feed, err := h.feedSvc.GetBubbleFeed(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

// GetKeywordRiver 获取河流图数据，days 可选
func (h *FeedHandler) GetKeywordRiver(c *gin.Context) {
	daysStr := c.DefaultQuery("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	feed, err := h.feedSvc.GetKeywordRiver(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

// GetTopicTreemap 获取树图数据
func (h *FeedHandler) GetTopicTreemap(c *gin.Context) {
	feed, err := h.feedSvc.GetTopicTreemap(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}
