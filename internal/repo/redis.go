package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// WindowCounters keeps fixed-window hit counters in Redis, shared by every
// server instance. Keys expire with their window.
type WindowCounters struct {
	rdb *redis.Client
	now func() time.Time
}

func NewWindowCounters(addr string) *WindowCounters {
	return &WindowCounters{rdb: redis.NewClient(&redis.Options{Addr: addr}), now: time.Now}
}

func (w *WindowCounters) Ping(ctx context.Context) error { return w.rdb.Ping(ctx).Err() }
func (w *WindowCounters) Close() error                   { return w.rdb.Close() }

// Hit records one hit for key in the current window and returns the hits
// counted so far, this one included.
func (w *WindowCounters) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := windowKey(key, window, w.now())
	pipe := w.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("count %s: %w", k, err)
	}
	return incr.Val(), nil
}

func windowKey(key string, window time.Duration, at time.Time) string {
	return fmt.Sprintf("rl:%s:%d", key, at.UnixNano()/int64(window))
}
