package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"Roomio/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Limiter counts a hit for key and reports whether it is still within limit
// for the current window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit rejects callers over perMinute requests with 429. It keys on the
// authenticated user when there is one and on the client IP otherwise.
// Limiter errors let the request through.
func RateLimit(limiter Limiter, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if userID := CurrentUserID(c); userID != "" {
			key = "user:" + userID
		}

		ok, err := limiter.Allow(c.Request.Context(), key, perMinute, time.Minute)
		if err != nil {
			logger.Warn("Rate limiter unavailable, allowing request", "key", key, "error", err)
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please slow down"})
			return
		}
		c.Next()
	}
}

// MemoryLimiter is an in-process fixed window limiter used when no Redis is configured
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

type window struct {
	requests  int
	resetTime time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (rl *MemoryLimiter) Allow(_ context.Context, key string, limit int, period time.Duration) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, exists := rl.windows[key]
	if !exists || !now.Before(w.resetTime) {
		rl.windows[key] = &window{requests: 1, resetTime: now.Add(period)}
		rl.sweep(now)
		return true, nil
	}

	if w.requests >= limit {
		return false, nil
	}
	w.requests++
	return true, nil
}

// sweep drops expired windows so idle keys do not accumulate.
func (rl *MemoryLimiter) sweep(now time.Time) {
	for key, w := range rl.windows {
		if !now.Before(w.resetTime) {
			delete(rl.windows, key)
		}
	}
}

// Reset clears all rate limits
func (rl *MemoryLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.windows = make(map[string]*window)
}
