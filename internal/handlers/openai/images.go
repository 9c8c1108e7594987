package openai

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"chaton2api-go/internal/constants"
	apperrors "chaton2api-go/internal/errors"
	common "chaton2api-go/internal/handlers/common"
	"chaton2api-go/internal/imagegen"
	logx "chaton2api-go/internal/logging"
	"chaton2api-go/internal/streaming"
	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// ImagesGenerations handles POST /v1/images/generations.
func (h *Handler) ImagesGenerations(c *gin.Context) {
	raw, err := readBody(c)
	if err != nil {
		common.AbortWithErr(c, err)
		return
	}
	var req openai.ImageRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		common.AbortWithErr(c, fmt.Errorf("%w: %v", apperrors.ErrMalformedRequest, err))
		return
	}
	if err := imagegen.ValidateFormat(req.ResponseFormat); err != nil {
		common.AbortWithErr(c, err)
		return
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		common.AbortWithErr(c, apperrors.ErrMissingPrompt)
		return
	}
	c.Set("model", constants.ImageGenModel)

	logger := logx.WithReq(c, log.Fields{"size": req.Size, "prompt_len": len(prompt)})
	ctx, cancel := common.WithUpstreamTimeout(c.Request.Context(), false, 0)
	defer cancel()

	signed, err := h.builder.BuildImagePrompt(ctx, prompt, req.Size)
	if err != nil {
		logger.WithError(err).Error("image request build failed")
		common.AbortWithErr(c, err)
		return
	}
	resp, err := h.client.Stream(ctx, signed)
	if err != nil {
		logger.WithError(err).Warn("upstream image generation failed")
		common.AbortWithErr(c, err)
		return
	}
	defer resp.Body.Close()

	tr := streaming.New(streaming.Options{Mode: streaming.ModeAggregate, Model: constants.ImageGenModel}, logger)
	res, err := tr.Run(resp.Body, nil)
	if err != nil {
		common.AbortWithErr(c, fmt.Errorf("%w: %v", apperrors.ErrUpstreamRequest, err))
		return
	}

	b64, err := h.resolver.Resolve(ctx, res.Text, logger)
	if err != nil {
		common.AbortWithErr(c, err)
		return
	}
	c.JSON(http.StatusOK, imagegen.Response(b64))
}
