// Package ratelimit throttles API requests per client address.
package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"lead_backend/internal/platform/http/response"
)

const (
	// MsgTooManyRequests is the body message of a 429.
	MsgTooManyRequests = "Too many requests from this IP, please try again later."

	storePrefix = "ratelimit"
)

// NewStore returns a redis-backed store shared across instances when rdb is
// non-nil, otherwise a process-local memory store.
func NewStore(rdb *redis.Client) (limiter.Store, error) {
	if rdb == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          storePrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		}), nil
	}
	return sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix:   storePrefix,
		MaxRetry: limiter.DefaultMaxRetry,
	})
}

// Middleware allows limit requests per window for each client IP.
// Responses carry X-RateLimit-Limit, X-RateLimit-Remaining and X-RateLimit-Reset.
// When the store fails the request is let through without rate-limit headers.
func Middleware(store limiter.Store, limit int64, window time.Duration) gin.HandlerFunc {
	instance := limiter.New(store, limiter.Rate{Period: window, Limit: limit})
	return func(c *gin.Context) {
		lc, err := instance.Get(c.Request.Context(), c.ClientIP())
		if err != nil {
			// ストア障害時は制限せずに通す（APIごと落とさない）
			slog.Error("rate limit store failed", "error", err, "remote_addr", c.ClientIP())
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lc.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lc.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lc.Reset, 10))

		if lc.Reached {
			slog.Warn("rate limit reached", "remote_addr", c.ClientIP(), "path", c.Request.URL.Path)
			response.Fail(c, http.StatusTooManyRequests, MsgTooManyRequests)
			return
		}
		c.Next()
	}
}
