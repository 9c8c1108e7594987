package openai

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "chaton2api-go/internal/errors"
	common "chaton2api-go/internal/handlers/common"
	logx "chaton2api-go/internal/logging"
	mw "chaton2api-go/internal/middleware"
	"chaton2api-go/internal/streaming"
	"chaton2api-go/internal/translator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// ChatCompletions handles POST /v1/chat/completions.
func (h *Handler) ChatCompletions(c *gin.Context) {
	raw, err := readBody(c)
	if err != nil {
		common.AbortWithErr(c, err)
		return
	}
	req, err := translator.ParseChatRequest(raw)
	if err != nil {
		common.AbortWithErr(c, err)
		return
	}
	c.Set("stream", req.Stream)

	logger := logx.WithReq(c, log.Fields{"stream": req.Stream})
	norm, err := h.normalizer.Normalize(c.Request.Context(), req, logger)
	if err != nil {
		logger.WithError(err).Info("chat request rejected")
		common.AbortWithErr(c, err)
		return
	}
	c.Set("model", norm.Model)
	logger = logger.WithFields(log.Fields{"model": norm.Model, "has_image": norm.HasImage, "messages": len(norm.Messages)})

	ctx, cancel := common.WithUpstreamTimeout(c.Request.Context(), true, h.streamTimeout)
	defer cancel()

	signed, err := h.builder.Build(ctx, norm)
	if err != nil {
		logger.WithError(err).Error("upstream request build failed")
		common.AbortWithErr(c, err)
		return
	}
	start := time.Now()
	resp, err := h.client.Stream(ctx, signed)
	if err != nil {
		logger.WithError(err).Warn("upstream chat failed")
		common.AbortWithErr(c, err)
		return
	}
	// closing abandons the upstream stream when the client goes away
	defer resp.Body.Close()
	logger.WithField("upstream_status", resp.StatusCode).Debug("upstream_connected")

	mode := streaming.ModeAggregate
	if norm.Stream {
		mode = streaming.ModePassthrough
	}
	tr := streaming.New(streaming.Options{Mode: mode, Images: norm.HasImage, Model: norm.Model}, logger)

	if norm.Stream {
		h.streamChat(c, tr, resp, logger, start)
		return
	}
	h.completeChat(c, tr, resp, norm.Model, logger)
}

func (h *Handler) streamChat(c *gin.Context, tr *streaming.Translator, resp *http.Response, logger *log.Entry, start time.Time) {
	path := routePath(c)
	sink := common.NewSSESink(c)
	res, err := tr.Run(resp.Body, sink)
	if res != nil {
		mw.RecordSSEFrames(path, res.Frames)
	}

	fields := log.Fields{"duration_ms": logx.DurationMS(time.Since(start))}
	if res != nil {
		fields["frames"] = res.Frames
		fields["skipped"] = res.Skipped
	}
	switch {
	case errors.Is(err, streaming.ErrSinkWrite):
		mw.RecordSSEClose(path, "client_gone")
		logger.WithFields(fields).WithError(err).Info("client disconnected mid-stream")
	case err != nil:
		mw.RecordSSEClose(path, "upstream_error")
		logger.WithFields(fields).WithError(err).Warn("upstream stream broke")
	case res != nil && !res.Done:
		mw.RecordSSEClose(path, "eof")
		logger.WithFields(fields).Debug("upstream ended without sentinel")
	default:
		mw.RecordSSEClose(path, "done")
		logger.WithFields(fields).Debug("stream complete")
	}
}

func (h *Handler) completeChat(c *gin.Context, tr *streaming.Translator, resp *http.Response, model string, logger *log.Entry) {
	res, err := tr.Run(resp.Body, nil)
	if err != nil {
		logger.WithError(err).Warn("upstream stream broke")
		common.AbortWithErr(c, fmt.Errorf("%w: %v", apperrors.ErrUpstreamRequest, err))
		return
	}
	c.JSON(http.StatusOK, completionResponse(model, res.Content()))
}

func completionResponse(model, content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:      "chatcmpl-" + uuid.NewString(),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []openai.ChatCompletionChoice{{
			Index: 0,
			Message: openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: content,
			},
			FinishReason: openai.FinishReasonStop,
		}},
	}
}
