package openai

import (
	"net/http"
	"time"

	"chaton2api-go/internal/constants"
	"github.com/gin-gonic/gin"
)

// ListModels handles GET /v1/models with the upstream allow-list.
func (h *Handler) ListModels(c *gin.Context) {
	created := time.Now().Unix()
	items := make([]gin.H, 0, len(constants.SupportedModels))
	for _, id := range constants.SupportedModels {
		items = append(items, gin.H{
			"id":       id,
			"object":   "model",
			"created":  created,
			"owned_by": "chaton",
		})
	}
	c.JSON(http.StatusOK, gin.H{"object": "list", "data": items})
}
