package kafka

import (
	"Threadpulse/internal/model"
	"Threadpulse/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// scrapedPostMessage 爬虫侧投递的贴文消息体
type scrapedPostMessage struct {
	PostID    string    `json:"post_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Likes     int       `json:"likes"`
	Replies   int       `json:"replies"`
	Reposts   int       `json:"reposts"`
	Images    []string  `json:"images"`
	PostURL   string    `json:"post_url"`
	ScrapedAt time.Time `json:"scraped_at"`
}

type RawPostsHandler struct {
	rawPostRepo repository.RawPostRepo
}

func NewRawPostsHandler(rawPostRepo repository.RawPostRepo) *RawPostsHandler {
	return &RawPostsHandler{
		rawPostRepo: rawPostRepo,
	}
}

func (s *RawPostsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("raw post consumer setup")
	return nil
}

func (s *RawPostsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("raw post consumer cleanup")
	return nil
}

func (s *RawPostsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-raw-post consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-raw-post process batch error", "err", err)
		return err
	}
	log.Info("topic-raw-post consume claim end")
	return nil
}

func (s *RawPostsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var scraped scrapedPostMessage
	if err := json.Unmarshal(msg.Value, &scraped); err != nil {
		// 坏消息直接丢弃，重试也不会变好
		log.WarnContext(ctx, "unmarshal scraped post error, drop message",
			"offset", msg.Offset, "err", err)
		return nil
	}
	if scraped.PostID == "" {
		log.WarnContext(ctx, "scraped post missing post_id, drop message", "offset", msg.Offset)
		return nil
	}

	scrapedAt := scraped.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = time.Now()
	}

	post := &model.RawPost{
		PostID:    scraped.PostID,
		Username:  scraped.Username,
		Content:   scraped.Content,
		Timestamp: scraped.Timestamp,
		Likes:     scraped.Likes,
		Replies:   scraped.Replies,
		Reposts:   scraped.Reposts,
		Images:    scraped.Images,
		PostURL:   scraped.PostURL,
		ScrapedAt: scrapedAt,
	}
	if err := s.rawPostRepo.UpsertPost(ctx, post); err != nil {
		return errors.Wrap(err, "upsert raw post")
	}
	return nil
}
