package hashkache

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// requestLogger logs every request through logrus instead of gin's
// default writer
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  status,
			"latency": time.Since(start),
			"client":  c.ClientIP(),
		})
		if status >= 500 {
			entry.Warn("Request failed")
		} else {
			entry.Debug("Request")
		}
	}
}
