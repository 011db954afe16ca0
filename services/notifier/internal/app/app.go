package internal

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-hub/pkg/config"
	"campus-hub/pkg/database"
	"campus-hub/pkg/logger"
	"campus-hub/pkg/metrics"
	"campus-hub/pkg/middleware"
	"campus-hub/pkg/push"
	"campus-hub/pkg/queue"
	"campus-hub/services/notifier/internal/entity"
	notifierHTTP "campus-hub/services/notifier/internal/controller/http"
	"campus-hub/services/notifier/internal/repo/cache"
	"campus-hub/services/notifier/internal/repo/persistent"
	"campus-hub/services/notifier/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Run wires the dispatcher and serves both trigger surfaces until SIGINT or
// SIGTERM. redisClient may be nil.
func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client, gateway push.Gateway) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewRecorder(registry)

	// Initialize Repository
	userRepo := persistent.NewUserRepository(db)

	var ledger usecase.DispatchLedger
	var hits middleware.HitCounter
	if redisClient != nil {
		ledger = cache.NewDispatchLedger(redisClient, cfg.DispatchDedupTTL)
		hits = middleware.NewRedisHitCounter(redisClient)
	} else {
		log.Warn("Redis disabled: duplicate deliveries are not suppressed and trigger rate limiting is off")
	}

	// Initialize UseCase
	dispatchUseCase := usecase.NewDispatchUseCase(userRepo, gateway, ledger, usecase.Options{
		AndroidChannelID: cfg.AndroidChannelID,
		DefaultTitle:     cfg.DefaultTitle,
		Timeout:          cfg.DispatchTimeout,
	}, log, usecase.NewLogSink(log), usecase.NewMetricsSink(recorder))

	// Initialize HTTP handlers
	triggerHandler := notifierHTTP.NewTriggerHandler(dispatchUseCase, queueClient, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(recorder.Handler()))

	api := r.Group("/api/v1")
	triggers := api.Group("/triggers")
	triggers.Use(middleware.RateLimitMiddleware(hits, cfg.TriggerRateLimit, time.Minute, log))
	{
		triggers.GET("/queue", triggerHandler.QueueStatus)
		triggers.POST("/:collection", triggerHandler.Dispatch)
		triggers.POST("/:collection/enqueue", triggerHandler.Enqueue)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()

	if err := queueClient.BindCollections(entity.WatchedCollections()); err != nil {
		log.Error("Failed to bind watched collections: %v", err)
		panic(err)
	}

	err := queueClient.ConsumeDocumentEvents(consumerCtx, cfg.QueueWorkers, func(ctx context.Context, ev queue.DocumentCreated) error {
		log.Debug("[NOTIFIER] Received %s/%s (event %s)", ev.Collection, ev.DocumentID, ev.EventID)
		// The result is already logged and counted by the sinks; a failed
		// dispatch is not redelivered.
		dispatchUseCase.HandleDocumentCreated(ctx, entity.TriggerEvent{
			Collection: ev.Collection,
			DocumentID: ev.DocumentID,
			Fields:     ev.Fields,
		})
		return nil
	})
	if err != nil {
		log.Error("Error starting document event consumer: %v", err)
		panic(err)
	}

	// Start server in a goroutine
	go func() {
		log.Info("Notifier service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down notifier service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	stopConsumer()
	closeBackends(log, queueClient, redisClient, db)

	log.Info("Notifier service exited")
}

// closeBackends closes the queue before the stores dispatches read from.
// redisClient may be nil.
func closeBackends(log *logger.Logger, queueClient io.Closer, redisClient *redis.Client, db *gorm.DB) {
	if err := queueClient.Close(); err != nil {
		log.Error("Error closing RabbitMQ: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if err := database.Close(db); err != nil {
		log.Error("Error closing database: %v", err)
	}
}
