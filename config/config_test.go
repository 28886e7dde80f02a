package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 0, cfg.Marketplace.QueueSizePerProducer)
	assert.Equal(t, "scenario.json", cfg.Simulation.InputFile)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "marketplace.order.placed", cfg.Kafka.Topic)
	assert.Equal(t, 24*time.Hour, cfg.Redis.ReceiptTTL)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("MARKETPLACE_QUEUE_SIZE_PER_PRODUCER", "4")
	t.Setenv("SIMULATION_INPUT_FILE", "tests/case01.json")
	t.Setenv("SIMULATION_TIMEOUT", "30s")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("REDIS_POOL_SIZE", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Marketplace.QueueSizePerProducer)
	assert.Equal(t, "tests/case01.json", cfg.Simulation.InputFile)
	assert.Equal(t, 30*time.Second, cfg.Simulation.Timeout)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "negative queue size", mutate: func(c *Config) { c.Marketplace.QueueSizePerProducer = -1 }, wantErr: true},
		{name: "missing input", mutate: func(c *Config) { c.Simulation.InputFile = "" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.Simulation.Timeout = -time.Second }, wantErr: true},
		{name: "redis without addr", mutate: func(c *Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }, wantErr: true},
		{name: "kafka without brokers", mutate: func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Brokers = nil }, wantErr: true},
		{name: "kafka without topic", mutate: func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Topic = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Simulation: SimulationConfig{InputFile: "scenario.json"},
				Redis:      RedisConfig{Addr: "localhost:6379"},
				Kafka:      KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "orders"},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
