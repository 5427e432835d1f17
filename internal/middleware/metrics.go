package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutoring-api/internal/service"
	"github.com/noah-isme/tutoring-api/pkg/response"
)

// Metrics records every request under its route pattern, so /classes/:id/schedule
// stays one series regardless of class id. Error responses are also counted by
// the code carried in the X-Error-Code header.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
		if code := c.Writer.Header().Get(response.ErrorCodeHeader); code != "" {
			metricsSvc.ObserveErrorCode(path, code)
		}
	}
}
