// file: internal/server/middleware/ratelimit.go
// version: 1.1.0
// guid: 4d6f8a0c-2e5b-47d1-93f5-7a9c1e3b5d07

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter is a lightweight per-IP token bucket limiter.
type IPRateLimiter struct {
	mu             sync.Mutex
	entries        map[string]*limiterEntry
	requestsPerMin int
	burst          int
	idleTTL        time.Duration
}

func NewIPRateLimiter(requestsPerMinute int, burst int) *IPRateLimiter {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{
		entries:        make(map[string]*limiterEntry),
		requestsPerMin: requestsPerMinute,
		burst:          burst,
		idleTTL:        15 * time.Minute,
	}
}

func (r *IPRateLimiter) limiterForIP(ip string) *rate.Limiter {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	for key, entry := range r.entries {
		if now.Sub(entry.lastSeen) > r.idleTTL {
			delete(r.entries, key)
		}
	}

	entry, ok := r.entries[ip]
	if !ok {
		perSecond := float64(r.requestsPerMin) / 60.0
		entry = &limiterEntry{
			limiter:  rate.NewLimiter(rate.Limit(perSecond), r.burst),
			lastSeen: now,
		}
		r.entries[ip] = entry
		return entry.limiter
	}

	entry.lastSeen = now
	return entry.limiter
}

// Middleware returns a Gin middleware that enforces the configured limit.
func (r *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !r.limiterForIP(ip).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
