package main

import (
	"context"
	"os"

	"campus-hub/pkg/cache"
	"campus-hub/pkg/config"
	"campus-hub/pkg/database"
	"campus-hub/pkg/logger"
	"campus-hub/pkg/push"
	"campus-hub/pkg/queue"
	notifierApp "campus-hub/services/notifier/internal/app"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewWithWriter(os.Stdout, cfg.LogLevel)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled {
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			log.Error("Failed to connect to redis: %v", err)
			panic(err)
		}
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v", err)
		panic(err)
	}

	var gateway push.Gateway
	if cfg.PushDryRun {
		log.Warn("PUSH_DRY_RUN is set, notifications are logged instead of sent")
		gateway = push.NewLogGateway(log)
	} else {
		gateway, err = push.NewFCMGateway(context.Background(), cfg, log)
		if err != nil {
			log.Error("Failed to initialize FCM: %v", err)
			panic(err)
		}
	}

	notifierApp.Run(cfg, log, db, redisClient, queueClient, gateway)
}
