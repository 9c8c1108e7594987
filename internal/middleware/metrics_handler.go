package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var metricsHTTPHandler = promhttp.Handler()

// MetricsHandler exposes Prometheus metrics using the standard promhttp handler.
func MetricsHandler(c *gin.Context) {
	metricsHTTPHandler.ServeHTTP(c.Writer, c.Request)
}
