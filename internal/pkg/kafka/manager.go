package kafka

import (
	"Threadpulse/internal/api/config"
	"Threadpulse/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	rawPostConsumer sarama.ConsumerGroup
	rawPostHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	rawPostRepo repository.RawPostRepo,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	rawPostConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaRawPostConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	rawPostHandler := NewRawPostsHandler(rawPostRepo)

	return &ConsumerManager{
		rawPostConsumer: rawPostConsumer,
		rawPostHandler:  rawPostHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaRawPostConsumer.Topic
		log.Info("Raw post consumer started", "topic", topic)
		for {
			if err := m.rawPostConsumer.Consume(ctx, []string{topic}, m.rawPostHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.rawPostConsumer.Close(); err != nil {
		log.Error("Failed to close raw post consumer", "err", err)
	}

	return nil
}
