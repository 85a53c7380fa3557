package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"analytics-workers/config"
	"analytics-workers/internal/clickhouse"
	"analytics-workers/internal/kafka"
	"analytics-workers/internal/postgres"
	"analytics-workers/internal/queue"
	"analytics-workers/internal/rabbitmq"
	"analytics-workers/internal/storage"
	"analytics-workers/internal/workers"
	"analytics-workers/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	log := logger.NewLogger()
	defer log.Sync()
	log.Info("starting analytics workers service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	log.Info("configuration loaded",
		zap.Strings("kafka_brokers", cfg.Kafka.Brokers),
		zap.String("kafka_topic", cfg.Kafka.Topic),
		zap.String("rabbitmq_queue", cfg.RabbitMQ.ReviewQueue),
		zap.Duration("flush_interval", cfg.Pipeline.FlushInterval),
	)

	// Connect to Postgres
	pgClient, err := postgres.NewClient(cfg.Postgres)
	if err != nil {
		log.Fatal("failed to connect to Postgres", zap.Error(err))
	}
	defer pgClient.Close()
	log.Info("connected to Postgres")

	// Connect to ClickHouse
	chClient, err := clickhouse.NewClient(cfg.ClickHouse)
	if err != nil {
		log.Fatal("failed to connect to ClickHouse", zap.Error(err))
	}
	defer chClient.Close()
	log.Info("connected to ClickHouse")

	// Connect to RabbitMQ for review events
	reviewConsumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	log.Info("connected to RabbitMQ")

	// Kafka consumer for behavioral events
	eventConsumer := kafka.NewConsumer(cfg.Kafka, log)

	// Wire the pipeline
	store := storage.NewStore(pgClient, chClient)
	aggregator := workers.NewAggregator(store, log)
	eventQueue := queue.NewEventQueue()
	eventWorker := workers.NewEventWorker(eventConsumer, eventQueue, aggregator, cfg.Pipeline.FlushInterval, log)

	ratingService := workers.NewRatingService(store, log)
	ratingWorker := workers.NewRatingWorker(reviewConsumer, ratingService, cfg.RabbitMQ.ReviewQueue, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := eventWorker.Start(ctx); err != nil {
			log.Error("event worker stopped", zap.Error(err))
		}
	}()

	go func() {
		defer wg.Done()
		if err := ratingWorker.Start(); err != nil {
			log.Error("rating worker stopped", zap.Error(err))
		}
	}()

	log.Info("all workers started")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down workers")
	cancel()
	eventConsumer.Close()
	reviewConsumer.Close()
	wg.Wait()
	log.Info("workers stopped")
}
