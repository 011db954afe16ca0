package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	ServerPort string

	// Logging
	LogLevel string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// RabbitMQ
	RabbitMQHost     string
	RabbitMQPort     string
	RabbitMQUser     string
	RabbitMQPassword string
	QueueWorkers     int

	// Firebase Cloud Messaging
	FirebaseProjectID       string
	FirebaseCredentialsFile string
	PushDryRun              bool
	AndroidChannelID        string
	DefaultTitle            string

	// Dispatch
	DispatchTimeout  time.Duration
	DispatchDedupTTL time.Duration

	// HTTP trigger requests per client per minute, 0 disables
	TriggerRateLimit int
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	config := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "campushub"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RabbitMQHost:     getEnv("RABBITMQ_HOST", "localhost"),
		RabbitMQPort:     getEnv("RABBITMQ_PORT", "5672"),
		RabbitMQUser:     getEnv("RABBITMQ_USER", "guest"),
		RabbitMQPassword: getEnv("RABBITMQ_PASSWORD", "guest"),

		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		AndroidChannelID:        getEnv("PUSH_ANDROID_CHANNEL_ID", "campus_hub_channel"),
		DefaultTitle:            getEnv("PUSH_DEFAULT_TITLE", "CampusHub"),
	}

	var err error
	if config.RedisEnabled, err = getEnvBool("REDIS_ENABLED", true); err != nil {
		return nil, err
	}
	if config.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if config.QueueWorkers, err = getEnvInt("QUEUE_WORKERS", 4); err != nil {
		return nil, err
	}
	if config.QueueWorkers < 1 {
		return nil, fmt.Errorf("QUEUE_WORKERS must be positive, got %d", config.QueueWorkers)
	}
	if config.PushDryRun, err = getEnvBool("PUSH_DRY_RUN", false); err != nil {
		return nil, err
	}
	if config.DispatchTimeout, err = getEnvDuration("DISPATCH_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if config.DispatchDedupTTL, err = getEnvDuration("DISPATCH_DEDUP_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	if config.TriggerRateLimit, err = getEnvInt("TRIGGER_RATE_LIMIT", 120); err != nil {
		return nil, err
	}

	return config, nil
}

// PostgresDSN builds the libpq keyword/value connection string shared by gorm and goose.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
	)
}

func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.RabbitMQUser,
		c.RabbitMQPassword,
		c.RabbitMQHost,
		c.RabbitMQPort,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
