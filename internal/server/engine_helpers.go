package server

import (
	"context"
	"net/http"
	"time"

	"chaton2api-go/internal/config"
	mw "chaton2api-go/internal/middleware"
	"chaton2api-go/internal/storage"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const healthTimeout = 3 * time.Second

// applyStandardEngineSettings applies common Gin settings and middlewares.
func applyStandardEngineSettings(engine *gin.Engine, cfg *config.Config) {
	if !cfg.Logging.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	_ = engine.SetTrustedProxies([]string{})

	engine.Use(mw.Recovery(), mw.RequestID(), mw.Metrics())
	engine.Use(mw.CORS())
	engine.Use(mw.RequestLogger())
}

// healthHandler reports process liveness plus image store reachability.
func healthHandler(store storage.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if store == nil {
			c.JSON(http.StatusOK, body)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := store.Health(ctx); err != nil {
			log.WithError(err).Warn("image store health check failed")
			body["status"] = "degraded"
			body["storage"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["storage"] = "ok"
		c.JSON(http.StatusOK, body)
	}
}
