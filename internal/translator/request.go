package translator

import (
	"fmt"
	"strings"

	"chaton2api-go/internal/constants"
	apperrors "chaton2api-go/internal/errors"
	"github.com/tidwall/gjson"
)

// ChatRequest holds the fields read from an OpenAI chat completion body.
// Absent or mistyped optional fields carry their defaults.
type ChatRequest struct {
	Model       string
	Temperature float64
	TopP        float64
	MaxTokens   int
	Stream      bool
	Messages    []gjson.Result
}

// ParseChatRequest extracts a ChatRequest from raw JSON.
func ParseChatRequest(raw []byte) (*ChatRequest, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: body is not valid JSON", apperrors.ErrMalformedRequest)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: body must be a JSON object", apperrors.ErrMalformedRequest)
	}
	messages := root.Get("messages")
	if !messages.IsArray() {
		return nil, fmt.Errorf("%w: messages must be an array", apperrors.ErrMalformedRequest)
	}

	return &ChatRequest{
		Model:       stringField(root, "model", constants.DefaultModel),
		Temperature: floatField(root, "temperature", constants.DefaultTemperature),
		TopP:        floatField(root, "top_p", constants.DefaultTopP),
		MaxTokens:   intField(root, "max_tokens", constants.DefaultMaxTokens),
		Stream:      boolField(root, "stream", false),
		Messages:    messages.Array(),
	}, nil
}

func stringField(root gjson.Result, key, def string) string {
	v := root.Get(key)
	if v.Type != gjson.String {
		return def
	}
	if s := strings.TrimSpace(v.String()); s != "" {
		return s
	}
	return def
}

func floatField(root gjson.Result, key string, def float64) float64 {
	if v := root.Get(key); v.Type == gjson.Number {
		return v.Float()
	}
	return def
}

func intField(root gjson.Result, key string, def int) int {
	if v := root.Get(key); v.Type == gjson.Number {
		return int(v.Int())
	}
	return def
}

func boolField(root gjson.Result, key string, def bool) bool {
	switch root.Get(key).Type {
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return def
	}
}
