package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rohitmodi970/casual-quizing/internal/response"
)

// RateLimiter is a per-client token bucket guarding the write endpoints
// (email registration and quiz submission). Each client IP gets burst
// tokens that refill continuously over the window.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	burst   float64
	window  time.Duration
}

type bucket struct {
	tokens  float64
	updated time.Time
}

// NewRateLimiter creates a limiter allowing burst requests per window per
// client. A janitor goroutine evicts idle buckets for the limiter's
// lifetime.
func NewRateLimiter(burst int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		burst:   float64(burst),
		window:  window,
	}

	go rl.janitor()

	return rl
}

// Middleware rejects requests from clients that exhausted their bucket
// with 429 on the standard error envelope.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.burst, updated: now}
		rl.buckets[key] = b
	} else {
		// Continuous refill proportional to elapsed time, capped at burst.
		elapsed := now.Sub(b.updated)
		b.tokens += elapsed.Seconds() / rl.window.Seconds() * rl.burst
		if b.tokens > rl.burst {
			b.tokens = rl.burst
		}
		b.updated = now
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-3 * rl.window)
		rl.mu.Lock()
		for key, b := range rl.buckets {
			if b.updated.Before(cutoff) {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}
