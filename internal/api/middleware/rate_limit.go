package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"authledger/internal/config"
	"authledger/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// MsgRateLimited is returned with 429
const MsgRateLimited = "Too many requests, please try again later"

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP with a token bucket
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	idleTTL  time.Duration
	window   int
	requests int
	now      func() time.Time
}

// NewRateLimiter creates a limiter allowing cfg.RateLimit.Requests per window,
// with bursts up to cfg.RateLimit.Burst. Call Run to evict idle clients.
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	burst := cfg.RateLimit.Burst
	if burst <= 0 {
		burst = cfg.RateLimit.Requests
	}
	window := time.Duration(cfg.RateLimit.Window) * time.Second

	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Every(window / time.Duration(cfg.RateLimit.Requests)),
		burst:    burst,
		idleTTL:  10 * window,
		window:   cfg.RateLimit.Window,
		requests: cfg.RateLimit.Requests,
		now:      time.Now,
	}
}

// getLimiter returns the limiter for key, creating it on first use
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = rl.now()
	return v.limiter
}

// evict drops limiters idle for longer than idleTTL
func (rl *RateLimiter) evict() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.idleTTL)
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
		}
	}
}

// Run evicts idle limiters every interval until stop is closed
func (rl *RateLimiter) Run(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evict()
		case <-stop:
			return
		}
	}
}

// Middleware returns a Gin middleware function that implements rate limiting
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getLimiter(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.requests))

		if !limiter.Allow() {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(rl.window))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.Fail(MsgRateLimited))
			return
		}

		remaining := int(limiter.Tokens())
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Next()
	}
}
