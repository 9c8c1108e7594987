package middleware

import (
	"time"

	"chaton2api-go/internal/logging"
	"chaton2api-go/internal/netutil"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RequestLogger logs HTTP requests
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		modelVal, _ := c.Get("model")
		streamVal, _ := c.Get("stream")
		extras := log.Fields{
			"status":     status,
			"latency_ms": logging.DurationMS(latency),
			"user_agent": c.Request.UserAgent(),
			"model":      modelVal,
			"stream":     streamVal,
			"client":     netutil.Source(netutil.ClientIP(c.Request)),
		}
		if len(c.Errors) > 0 {
			extras["errors"] = c.Errors.String()
		}
		entry := logging.WithReq(c, extras)
		if status >= 500 {
			entry.Warn("http_request")
			return
		}
		entry.Info("http_request")
	}
}
