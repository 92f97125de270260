package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"tonpay/internal/infrastructure/metrics"
)

// Metrics counts every handled request. Uses the matched route pattern so
// path parameters do not explode the label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
