package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"analytics-workers/config"
	"analytics-workers/models"
	"analytics-workers/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Consumer subscribes to the user_events topic with a fixed group id and
// hands every decoded event to the provided handler. Consumption starts at
// the latest offset: events published before subscription start are lost by
// design.
type Consumer struct {
	reader *kafka.Reader
	log    *logger.Logger
}

func NewConsumer(cfg config.KafkaConfig, log *logger.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		StartOffset: kafka.LastOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})

	return &Consumer{reader: reader, log: log}
}

// Run reads messages until the context is cancelled. Offsets are committed
// by the reader as messages are fetched; a message is accepted the instant it
// is handed off. Undecodable payloads are logged and dropped.
func (c *Consumer) Run(ctx context.Context, handler func(models.BehavioralEvent)) error {
	c.log.Info("started consuming behavioral events",
		zap.String("topic", c.reader.Config().Topic),
		zap.String("group_id", c.reader.Config().GroupID),
	)

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var event models.BehavioralEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.log.Error("dropping undecodable event payload",
				zap.Error(err),
				zap.Int64("offset", msg.Offset),
			)
			continue
		}

		handler(event)
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
