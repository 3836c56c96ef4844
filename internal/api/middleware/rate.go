package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
	// IdleTimeout evicts limiters for clients not seen for this long.
	IdleTimeout time.Duration
}

// DefaultRateLimitConfig returns the default rate limit configuration.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		Burst:             200,
		IdleTimeout:       5 * time.Minute,
	}
}

type limiterClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter keeps one token bucket per client IP.
type ipLimiter struct {
	cfg       RateLimitConfig
	now       func() time.Time
	mu        sync.Mutex
	clients   map[string]*limiterClient
	lastSweep time.Time
}

func newIPLimiter(cfg RateLimitConfig) *ipLimiter {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultRateLimitConfig().IdleTimeout
	}
	return &ipLimiter{
		cfg:     cfg,
		now:     time.Now,
		clients: make(map[string]*limiterClient),
	}
}

func (l *ipLimiter) allow(ip string) bool {
	now := l.now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) >= l.cfg.IdleTimeout {
		for key, c := range l.clients {
			if now.Sub(c.lastSeen) >= l.cfg.IdleTimeout {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}

	c, exists := l.clients[ip]
	if !exists {
		c = &limiterClient{
			limiter: rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.Burst),
		}
		l.clients[ip] = c
	}
	c.lastSeen = now
	limiter := c.limiter
	l.mu.Unlock()

	return limiter.AllowN(now, 1)
}

func (l *ipLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimit creates a per-IP rate limiting middleware.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	return rateLimit(newIPLimiter(cfg))
}

func rateLimit(l *ipLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
