package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "user_events", cfg.Kafka.Topic)
	assert.Equal(t, "analytics-event-workers", cfg.Kafka.GroupID)
	assert.Equal(t, 3*time.Second, cfg.Pipeline.FlushInterval)
	assert.Equal(t, 10, cfg.RabbitMQ.PrefetchCount)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("FLUSH_INTERVAL_MS", "500")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 500*time.Millisecond, cfg.Pipeline.FlushInterval)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	cfg.Kafka.Topic = ""
	assert.Error(t, cfg.Validate())

	cfg, _ = LoadConfig()
	cfg.Pipeline.FlushInterval = 0
	assert.Error(t, cfg.Validate())
}
