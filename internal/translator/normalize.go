package translator

import (
	"context"
	"strings"

	apperrors "chaton2api-go/internal/errors"
	"chaton2api-go/internal/images"
	"chaton2api-go/internal/logging"
	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// ImageRef is a resolved image attached to a message.
type ImageRef struct {
	URL string
}

// ChatMessage is the canonical message forwarded upstream.
type ChatMessage struct {
	Role    string
	Content string
	Images  []ImageRef
}

// NormalizedRequest is a chat request ready for the upstream body builder.
type NormalizedRequest struct {
	Model       string
	Temperature float64
	TopP        float64
	MaxTokens   int
	Stream      bool
	HasImage    bool
	SourceTag   string
	Messages    []ChatMessage
}

// ImageResolver turns an image reference into a URL.
type ImageResolver interface {
	Ingest(ctx context.Context, ref string, logger *log.Entry) (images.Result, bool)
}

// Normalizer flattens client messages into ChatMessages.
type Normalizer struct {
	images ImageResolver
}

func NewNormalizer(resolver ImageResolver) *Normalizer {
	return &Normalizer{images: resolver}
}

// ImageMarkdown renders a URL the way images are embedded in message text.
func ImageMarkdown(url string) string {
	return "![Image](" + url + ")"
}

// Normalize flattens req. It fails with ErrAllMessagesEmpty when nothing survives.
func (n *Normalizer) Normalize(ctx context.Context, req *ChatRequest, logger *log.Entry) (*NormalizedRequest, error) {
	logger = logging.OrDefault(logger)
	out := &NormalizedRequest{
		Model:       NormalizeModel(req.Model),
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
		Stream:      req.Stream,
	}
	if out.Model != req.Model {
		logger.WithFields(log.Fields{"requested": req.Model, "model": out.Model}).Debug("model substituted")
	}

	for idx, raw := range req.Messages {
		msg, keep := n.flatten(ctx, idx, raw, logger)
		if !keep {
			continue
		}
		if len(msg.Images) > 0 {
			out.HasImage = true
		}
		out.Messages = append(out.Messages, msg)
	}
	if len(out.Messages) == 0 {
		return nil, apperrors.ErrAllMessagesEmpty
	}
	out.SourceTag = SourceTag(out.HasImage)
	return out, nil
}

func (n *Normalizer) flatten(ctx context.Context, idx int, raw gjson.Result, logger *log.Entry) (ChatMessage, bool) {
	if !raw.IsObject() {
		logger.WithField("message_index", idx).Warn("skipping non-object message")
		return ChatMessage{}, false
	}
	msg := ChatMessage{Role: raw.Get("role").String()}
	if msg.Role == "" {
		msg.Role = openai.ChatMessageRoleUser
	}

	content := raw.Get("content")
	switch {
	case content.Type == gjson.String:
		msg.Content = strings.TrimSpace(content.String())
	case content.IsArray():
		msg.Content, msg.Images = n.flattenParts(ctx, idx, content.Array(), logger)
	default:
		logger.WithField("message_index", idx).Debug("dropping message without usable content")
		return ChatMessage{}, false
	}

	if msg.Content == "" && len(msg.Images) == 0 {
		return ChatMessage{}, false
	}
	return msg, true
}

func (n *Normalizer) flattenParts(ctx context.Context, idx int, parts []gjson.Result, logger *log.Entry) (string, []ImageRef) {
	var (
		segments []string
		refs     []ImageRef
	)
	for pi, part := range parts {
		entry := logger.WithFields(log.Fields{"message_index": idx, "part_index": pi})
		switch part.Get("type").String() {
		case "text":
			if text := part.Get("text"); text.Type == gjson.String && text.String() != "" {
				segments = append(segments, text.String())
			}
		case "image_url":
			ref, ok := imageURLOf(part)
			if !ok {
				entry.Warn("skipping malformed image_url part")
				continue
			}
			if n.images == nil {
				entry.Warn("no image resolver configured, dropping image")
				continue
			}
			res, present := n.images.Ingest(ctx, ref, entry)
			if !present {
				continue
			}
			refs = append(refs, ImageRef{URL: res.URL})
			segments = append(segments, ImageMarkdown(res.URL))
		default:
			entry.Warn("skipping unsupported content part")
		}
	}
	return strings.TrimSpace(strings.Join(segments, " ")), refs
}

// imageURLOf accepts both {"image_url":{"url":...}} and {"image_url":"..."}.
func imageURLOf(part gjson.Result) (string, bool) {
	v := part.Get("image_url")
	if v.Type == gjson.String {
		return v.String(), strings.TrimSpace(v.String()) != ""
	}
	if u := v.Get("url"); v.IsObject() && u.Type == gjson.String && strings.TrimSpace(u.String()) != "" {
		return u.String(), true
	}
	return "", false
}
