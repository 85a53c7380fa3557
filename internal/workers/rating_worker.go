package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"analytics-workers/internal/rabbitmq"
	"analytics-workers/models"
	"analytics-workers/pkg/logger"

	"go.uber.org/zap"
)

// RatingWorker consumes review change notifications from the review queue
// and triggers a full rating recompute for the affected product.
type RatingWorker struct {
	consumer  *rabbitmq.Consumer
	service   *RatingService
	queueName string
	log       *logger.Logger
}

func NewRatingWorker(consumer *rabbitmq.Consumer, service *RatingService, queueName string, log *logger.Logger) *RatingWorker {
	return &RatingWorker{
		consumer:  consumer,
		service:   service,
		queueName: queueName,
		log:       log,
	}
}

func (w *RatingWorker) Start() error {
	w.log.Info("starting rating worker", zap.String("queue", w.queueName))
	return w.consumer.ConsumeQueue(w.queueName, w.handleMessage)
}

func (w *RatingWorker) handleMessage(body []byte) error {
	var evt models.ReviewEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return fmt.Errorf("failed to unmarshal review event: %w", err)
	}

	switch evt.Event {
	case "created", "updated", "deleted":
	default:
		return fmt.Errorf("unknown review event type: %s", evt.Event)
	}

	if evt.ProductID == "" {
		return fmt.Errorf("review event without product_id")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return w.service.Recalc(ctx, evt.ProductID)
}
