package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// loggerMiddleware logs one entry per request after it completed.
func loggerMiddleware(log Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		fields := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        path,
			"status_code": c.Writer.Status(),
			"latency_ms":  time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
			"body_size":   c.Writer.Size(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("Request completed", nil, fields)
			return
		}
		log.Info("Request completed", nil, fields)
	}
}

// recoveryMiddleware turns a panic into a JSON 500.
func recoveryMiddleware(log Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic while serving request", nil, map[string]interface{}{
			"path":  c.Request.URL.Path,
			"panic": recovered,
		})
		writeError(c, http.StatusInternalServerError, "internal server error")
	})
}

// timeoutMiddleware bounds the request context. Handlers see the deadline
// through c.Request.Context().
func timeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// bodySizeLimiter caps request bodies at limit bytes.
func bodySizeLimiter(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
