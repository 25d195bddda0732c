package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/response"
)

// RateLimiter hands out one token bucket per caller.
type RateLimiter struct {
	limit rate.Limit
	burst int
	idle  time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perMinute requests per caller with the given burst.
// A non-positive perMinute disables limiting.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(float64(perMinute) / 60.0)
	}
	return &RateLimiter{limit: limit, burst: burst, idle: 10 * time.Minute, buckets: make(map[string]*bucket)}
}

// Allow reports whether key may proceed now.
func (l *RateLimiter) Allow(key string) bool {
	if l.limit == rate.Inf {
		return true
	}
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	if len(l.buckets) > 1024 {
		l.evictIdle(now)
	}
	return b.limiter.AllowN(now, 1)
}

func (l *RateLimiter) evictIdle(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idle {
			delete(l.buckets, key)
		}
	}
}

// Middleware limits by authenticated user, falling back to client IP.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if claims := Claims(c); claims != nil {
			key = "user:" + strconv.FormatInt(claims.UserID, 10)
		}
		if !l.Allow(key) {
			c.Header("Retry-After", "60")
			response.Error(c, appErrors.ErrRateLimited)
			c.Abort()
			return
		}
		c.Next()
	}
}
