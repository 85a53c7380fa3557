package workers

import (
	"context"
	"time"

	"analytics-workers/internal/kafka"
	"analytics-workers/internal/queue"
	"analytics-workers/pkg/logger"

	"go.uber.org/zap"
)

// EventWorker ties the pipeline together: the Kafka consumer appends inbound
// events to the queue, and a single drain goroutine empties it on a fixed
// interval, running the batch through the validator and the aggregator.
// Because one goroutine owns the drain, two drains can never overlap.
type EventWorker struct {
	consumer   *kafka.Consumer
	queue      *queue.EventQueue
	aggregator *Aggregator
	interval   time.Duration
	log        *logger.Logger
}

func NewEventWorker(consumer *kafka.Consumer, q *queue.EventQueue, aggregator *Aggregator, interval time.Duration, log *logger.Logger) *EventWorker {
	return &EventWorker{
		consumer:   consumer,
		queue:      q,
		aggregator: aggregator,
		interval:   interval,
		log:        log,
	}
}

// Start blocks until the context is cancelled. Events still queued when the
// context ends are lost; the pipeline makes no flush guarantee on shutdown.
func (w *EventWorker) Start(ctx context.Context) error {
	w.log.Info("starting event worker", zap.Duration("flush_interval", w.interval))

	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.drainOnce(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()

	err := w.consumer.Run(ctx, w.queue.Enqueue)
	<-done
	return err
}

// drainOnce takes the whole backlog, filters it, and processes the surviving
// events sequentially in arrival order. A failure on one event is logged and
// does not abort its siblings.
func (w *EventWorker) drainOnce(ctx context.Context) {
	batch := w.queue.DrainAll()
	if len(batch) == 0 {
		return
	}

	valid := FilterEvents(batch)
	w.log.Info("draining event batch",
		zap.Int("received", len(batch)),
		zap.Int("valid", len(valid)),
	)

	for _, event := range valid {
		if err := w.aggregator.Apply(ctx, event); err != nil {
			w.log.Error("failed to process event",
				zap.String("action", event.Action),
				zap.String("user_id", event.UserID),
				zap.String("product_id", event.ProductID),
				zap.Error(err),
			)
		}
	}
}
