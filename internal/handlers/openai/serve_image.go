package openai

import (
	"net/http"

	common "chaton2api-go/internal/handlers/common"
	"chaton2api-go/internal/images"
	logx "chaton2api-go/internal/logging"
	"chaton2api-go/internal/storage"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ServeImage handles GET /images/:name for persisted inline images.
func (h *Handler) ServeImage(c *gin.Context) {
	name := c.Param("name")
	if err := storage.ValidateName(name); err != nil {
		common.AbortWithError(c, http.StatusNotFound, "not_found", "image not found")
		return
	}
	data, err := h.store.Get(c.Request.Context(), name)
	if err != nil {
		if storage.IsNotFound(err) {
			common.AbortWithError(c, http.StatusNotFound, "not_found", "image not found")
			return
		}
		logx.WithReq(c, log.Fields{"image": name}).WithError(err).Error("image read failed")
		common.AbortWithError(c, http.StatusInternalServerError, "storage_error", "image read failed")
		return
	}
	// names are random and never rewritten
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Data(http.StatusOK, images.ContentTypeFor(name), data)
}
