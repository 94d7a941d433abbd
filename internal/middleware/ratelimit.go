package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"fikhidmatik/internal/pkg/response"
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit applies a per-client-IP token bucket. Used on the auth endpoints
// to slow down credential stuffing; stale entries are pruned on access.
func RateLimit(perMinute, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*ipLimiter)
	)

	limit := rate.Every(time.Minute / time.Duration(perMinute))

	get := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		for k, v := range limiters {
			if now.Sub(v.lastSeen) > 10*time.Minute {
				delete(limiters, k)
			}
		}

		l, ok := limiters[ip]
		if !ok {
			l = &ipLimiter{limiter: rate.NewLimiter(limit, burst)}
			limiters[ip] = l
		}
		l.lastSeen = now
		return l.limiter
	}

	return func(c *gin.Context) {
		if !get(c.ClientIP()).Allow() {
			response.Error(c, http.StatusTooManyRequests, response.CodeRateLimited, "Too many requests, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}
