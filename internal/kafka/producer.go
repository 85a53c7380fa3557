package kafka

import (
	"context"
	"encoding/json"
	"sync"

	"analytics-workers/config"
	"analytics-workers/models"
	"analytics-workers/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer publishes behavioral events to the user_events topic. It is the
// fire-and-forget emitter embedded in the storefront process: Emit never
// returns an error to the caller, and the underlying writer is created once
// on first use.
type Producer struct {
	cfg    config.KafkaConfig
	log    *logger.Logger
	once   sync.Once
	writer *kafka.Writer
}

func NewProducer(cfg config.KafkaConfig, log *logger.Logger) *Producer {
	return &Producer{cfg: cfg, log: log}
}

func (p *Producer) init() {
	p.writer = &kafka.Writer{
		Addr:     kafka.TCP(p.cfg.Brokers...),
		Topic:    p.cfg.Topic,
		Balancer: &kafka.LeastBytes{},
		Async:    true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				p.log.Error("failed to publish behavioral event", zap.Error(err))
			}
		},
	}
}

// Emit serializes the event and publishes it to the topic. Best-effort:
// serialization and publish failures are logged and swallowed.
func (p *Producer) Emit(event models.BehavioralEvent) {
	p.once.Do(p.init)

	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Error("failed to serialize behavioral event", zap.Error(err))
		return
	}

	if err := p.writer.WriteMessages(context.Background(), kafka.Message{Value: payload}); err != nil {
		p.log.Error("failed to enqueue behavioral event", zap.Error(err))
	}
}

func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
