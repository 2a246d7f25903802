package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	// Key prefix for Redis counters
	KeyPrefix string
}

// rateLimitEntry tracks request count for a key when Redis is unavailable
type rateLimitEntry struct {
	count   int
	resetAt time.Time
	mu      sync.Mutex
}

var (
	rateLimitStore = sync.Map{}
	cleanupOnce    sync.Once
)

// Atomic increment with TTL set on first hit.
// KEYS[1] = counter key, ARGV[1] = TTL seconds. Returns [count, ttl].
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// RateLimit limits requests per client IP over a sliding window, counting in
// Redis when available and in process memory otherwise
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rl:ip:"
	}
	startCleanup(cfg.Window)

	return func(c *gin.Context) {
		key := cfg.KeyPrefix + c.ClientIP()

		var count int
		var retryAfter time.Duration

		if rdb := redis.Client(); rdb != nil {
			rCount, rTTL, err := incrRedis(c.Request.Context(), rdb, key, cfg.Window)
			if err == nil {
				count = rCount
				retryAfter = rTTL
			} else {
				count, retryAfter = incrMemory(key, cfg.Window)
			}
		} else {
			count, retryAfter = incrMemory(key, cfg.Window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		remaining := cfg.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > cfg.Limit {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			response.Error(c, http.StatusTooManyRequests, "Too many requests, slow down", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func incrRedis(ctx context.Context, rdb *goredis.Client, key string, window time.Duration) (int, time.Duration, error) {
	res, err := rdb.Eval(ctx, rateLimitLuaScript, []string{key}, int(window.Seconds())).Result()
	if err != nil {
		return 0, 0, err
	}
	vals, ok := res.([]interface{})
	if !ok || len(vals) != 2 {
		return 0, 0, fmt.Errorf("unexpected rate limit script result: %v", res)
	}
	count, _ := vals[0].(int64)
	ttl, _ := vals[1].(int64)
	return int(count), time.Duration(ttl) * time.Second, nil
}

func incrMemory(key string, window time.Duration) (int, time.Duration) {
	now := time.Now()
	value, _ := rateLimitStore.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(window)})
	entry := value.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(window)
	}
	entry.count++
	return entry.count, time.Until(entry.resetAt)
}

// startCleanup evicts expired in-memory counters in the background
func startCleanup(window time.Duration) {
	cleanupOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(window * 2)
			defer ticker.Stop()
			for range ticker.C {
				now := time.Now()
				rateLimitStore.Range(func(key, value any) bool {
					entry := value.(*rateLimitEntry)
					entry.mu.Lock()
					expired := now.After(entry.resetAt)
					entry.mu.Unlock()
					if expired {
						rateLimitStore.Delete(key)
					}
					return true
				})
			}
		}()
	})
}
