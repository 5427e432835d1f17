package middleware

import (
	"context"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutoring-api/internal/service"
	appErrors "github.com/noah-isme/tutoring-api/pkg/errors"
	"github.com/noah-isme/tutoring-api/pkg/response"
)

type rateLimiter interface {
	Allow(ctx context.Context, client string) service.RateLimitDecision
}

type rejectionObserver interface {
	ObserveRateLimited()
}

// RateLimit rejects clients that exceed the limiter's window with 429.
// A nil limiter disables the check.
func RateLimit(limiter rateLimiter, observer rejectionObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		decision := limiter.Allow(c.Request.Context(), c.ClientIP())
		if decision.Allowed {
			c.Next()
			return
		}
		if observer != nil {
			observer.ObserveRateLimited()
		}
		seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(seconds))
		response.Error(c, appErrors.ErrTooManyRequests)
	}
}
