package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("RABBITMQ_HOST", "mq")
	t.Setenv("QUEUE_WORKERS", "8")
	t.Setenv("PUSH_DRY_RUN", "true")
	t.Setenv("PUSH_ANDROID_CHANNEL_ID", "custom_channel")
	t.Setenv("DISPATCH_TIMEOUT", "5s")
	t.Setenv("DISPATCH_DEDUP_TTL", "1h")
	t.Setenv("TRIGGER_RATE_LIMIT", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "cache", cfg.RedisHost)
	assert.Equal(t, "6380", cfg.RedisPort)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, "mq", cfg.RabbitMQHost)
	assert.Equal(t, 8, cfg.QueueWorkers)
	assert.True(t, cfg.PushDryRun)
	assert.Equal(t, "custom_channel", cfg.AndroidChannelID)
	assert.Equal(t, 5*time.Second, cfg.DispatchTimeout)
	assert.Equal(t, time.Hour, cfg.DispatchDedupTTL)
	assert.Equal(t, 0, cfg.TriggerRateLimit)
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "DB_HOST", "QUEUE_WORKERS", "PUSH_DRY_RUN", "DISPATCH_TIMEOUT", "PUSH_ANDROID_CHANNEL_ID", "PUSH_DEFAULT_TITLE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 4, cfg.QueueWorkers)
	assert.False(t, cfg.PushDryRun)
	assert.Equal(t, 30*time.Second, cfg.DispatchTimeout)
	assert.Equal(t, "campus_hub_channel", cfg.AndroidChannelID)
	assert.Equal(t, "CampusHub", cfg.DefaultTitle)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad duration", "DISPATCH_TIMEOUT", "soon"},
		{"bad ttl", "DISPATCH_DEDUP_TTL", "forever"},
		{"bad bool", "PUSH_DRY_RUN", "maybe"},
		{"bad int", "QUEUE_WORKERS", "many"},
		{"non-positive workers", "QUEUE_WORKERS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDSNs(t *testing.T) {
	cfg := &Config{
		DBHost: "h", DBPort: "1", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "disable",
		RabbitMQHost: "mq", RabbitMQPort: "5672", RabbitMQUser: "guest", RabbitMQPassword: "secret",
	}

	assert.Equal(t, "host=h user=u password=p dbname=n port=1 sslmode=disable", cfg.PostgresDSN())
	assert.Equal(t, "amqp://guest:secret@mq:5672/", cfg.RabbitMQURL())
}
