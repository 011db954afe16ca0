package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"campus-hub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// HitCounter counts requests for key inside a fixed window.
type HitCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

type RedisHitCounter struct {
	client *redis.Client
}

func NewRedisHitCounter(client *redis.Client) *RedisHitCounter {
	return &RedisHitCounter{client: client}
}

func (r *RedisHitCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		r.client.Expire(ctx, key, window)
	}
	return count, nil
}

// RateLimitMiddleware allows limit requests per client IP and route within
// window. Counter errors let the request through.
func RateLimitMiddleware(counter HitCounter, limit int, window time.Duration, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.FullPath(), c.ClientIP())

		count, err := counter.Hit(c.Request.Context(), key, window)
		if err != nil {
			log.Warn("Rate limit check failed for %s: %v", key, err)
			c.Next()
			return
		}

		if count > int64(limit) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
