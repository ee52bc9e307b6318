package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/community-service/internal/metrics"
	"go.uber.org/zap"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type bucket struct {
	tokens  int
	updated time.Time
}

// MemoryLimiter is a per-process fixed window limiter, used when Redis is
// not configured. Expired buckets are dropped once per window.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    int
	window  time.Duration
	now     func() time.Time
	swept   time.Time
}

func NewMemoryLimiter(rate int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{buckets: make(map[string]*bucket), rate: rate, window: window, now: time.Now}
}

func (rl *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if now.Sub(rl.swept) > rl.window {
		rl.sweep(now)
	}
	b, ok := rl.buckets[key]
	if !ok || now.Sub(b.updated) > rl.window {
		rl.buckets[key] = &bucket{tokens: 1, updated: now}
		return true, nil
	}
	if b.tokens < rl.rate {
		b.tokens++
		return true, nil
	}
	return false, nil
}

func (rl *MemoryLimiter) sweep(now time.Time) {
	for k, b := range rl.buckets {
		if now.Sub(b.updated) > rl.window {
			delete(rl.buckets, k)
		}
	}
	rl.swept = now
}

// WindowCounter counts hits per key in fixed windows shared across server
// instances (repo.WindowCounters).
type WindowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

type SharedLimiter struct {
	counter WindowCounter
	rate    int
	window  time.Duration
}

func NewSharedLimiter(counter WindowCounter, rate int, window time.Duration) *SharedLimiter {
	return &SharedLimiter{counter: counter, rate: rate, window: window}
}

func (rl *SharedLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := rl.counter.Hit(ctx, key, rl.window)
	if err != nil {
		return true, err
	}
	return n <= int64(rl.rate), nil
}

// RateLimit rejects callers over the limit with 429. Limiter errors fail
// open.
func RateLimit(l Limiter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), ClientIP(c))
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
		}
		if !ok {
			metrics.RateLimited.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorBody{Success: false, Message: "too many requests"})
			return
		}
		c.Next()
	}
}
