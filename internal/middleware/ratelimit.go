package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	apperrors "posapi/internal/errors"
	"posapi/internal/logger"
	"posapi/internal/respond"
)

// limiterIdleTTL is how long a client's bucket survives without requests.
const limiterIdleTTL = 10 * time.Minute

// RateLimit returns a Gin middleware that allows each client IP perMinute
// requests per minute with a burst of the same size. A non-positive
// perMinute disables limiting.
func RateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiters := cache.New(limiterIdleTTL, limiterIdleTTL)
	every := rate.Every(time.Minute / time.Duration(perMinute))

	return func(c *gin.Context) {
		ip := c.ClientIP()

		var limiter *rate.Limiter
		if v, ok := limiters.Get(ip); ok {
			limiter = v.(*rate.Limiter)
		} else {
			limiter = rate.NewLimiter(every, perMinute)
			// Another request from the same IP may have raced us here.
			if err := limiters.Add(ip, limiter, cache.DefaultExpiration); err != nil {
				if v, ok := limiters.Get(ip); ok {
					limiter = v.(*rate.Limiter)
				}
			}
		}
		// Sliding idle expiry.
		limiters.SetDefault(ip, limiter)

		if !limiter.Allow() {
			logger.From(c.Request.Context()).Warnw("rate limit exceeded",
				"client_ip", ip,
				"path", c.Request.URL.Path,
			)
			c.Header("Retry-After", "60")
			respond.Error(c, apperrors.ErrRateLimited)
			return
		}

		c.Next()
	}
}
