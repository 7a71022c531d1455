package mw

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an idle client's limiter is kept.
const limiterIdleTTL = 10 * time.Minute

// IPRateLimiter hands out a token bucket per client IP. Buckets of idle
// clients expire so the set does not grow without bound.
type IPRateLimiter struct {
	limiters *cache.Cache
	mu       sync.Mutex
	r        rate.Limit
	b        int
}

// NewIPRateLimiter creates a new IPRateLimiter.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	if b <= 0 {
		b = 1
	}
	return &IPRateLimiter{
		limiters: cache.New(limiterIdleTTL, limiterIdleTTL),
		r:        r,
		b:        b,
	}
}

// GetLimiter returns the limiter for an IP address, creating it on first use.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	if v, found := i.limiters.Get(ip); found {
		// Touch to extend the idle window.
		i.limiters.SetDefault(ip, v)
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(i.r, i.b)
	i.limiters.SetDefault(ip, limiter)
	return limiter
}

// RateLimiter is a middleware for IP-based rate limiting. A non-positive
// rate disables it.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	if r <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := NewIPRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
