// Package httpx holds the gin middleware shared by every route: request ids,
// access logging and prometheus metrics.
package httpx

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDKey = "request_id"

// RequestID honours an inbound X-Request-ID and generates one otherwise, so
// storefront log lines can be correlated with the caller's.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(RequestIDKey, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// Logger writes one access line per request, keyed by the route template so
// /api/products/:id aggregates across product ids like the metrics do.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		log.Printf("[storefront] %s %s status=%d dur=%s rid=%s",
			c.Request.Method, route, c.Writer.Status(),
			time.Since(start).Round(time.Microsecond), c.GetString(RequestIDKey))
	}
}
