package middleware

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/state244/hub/internal/infrastructure/telemetry"
	"github.com/state244/hub/internal/interfaces/http/dto"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// IPRateLimiter keeps one token bucket per client IP
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter allows perSecond requests per IP with the given burst
func NewIPRateLimiter(perSecond float64, burst int) *IPRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow takes one token for key
func (rl *IPRateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Remaining reports the whole tokens left for key
func (rl *IPRateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		return rl.burst
	}
	return int(math.Max(0, math.Floor(v.limiter.TokensAt(rl.now()))))
}

// Prune forgets visitors idle for longer than idle and returns how many were dropped
func (rl *IPRateLimiter) Prune(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-idle)
	dropped := 0
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
			dropped++
		}
	}
	return dropped
}

// Run prunes idle visitors every interval until ctx ends
func (rl *IPRateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Prune(interval)
		}
	}
}

// RateLimitConfig wires a limiter into a route
type RateLimitConfig struct {
	Limiter *IPRateLimiter
	// Action labels rejections in logs and metrics, e.g. "contact"
	Action  string
	Metrics *telemetry.BusinessMetrics
	Logger  *zap.Logger
}

// RateLimit limits requests per client IP
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		if !cfg.Limiter.Allow(key) {
			cfg.Metrics.QuotaRejected(cfg.Action)
			if cfg.Logger != nil {
				cfg.Logger.Warn("Rate limit exceeded",
					zap.String("client_ip", key),
					zap.String("action", cfg.Action),
					zap.String("path", c.Request.URL.Path))
			}
			c.Header("Retry-After", "1")
			abortWithCode(c, dto.ErrCodeRateLimited, "Too many requests. Please try again later.")
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limiter.burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(cfg.Limiter.Remaining(key)))
		c.Next()
	}
}
