package upstream

import (
	"encoding/json"
	"strconv"
	"strings"

	"chaton2api-go/internal/constants"
	"chaton2api-go/internal/translator"
	"github.com/sashabaranov/go-openai"
	"github.com/tidwall/sjson"
)

// Field order is the wire order; the signer hashes these exact bytes.
type chatPayload struct {
	FunctionImageGen  bool             `json:"function_image_gen"`
	FunctionWebSearch bool             `json:"function_web_search"`
	MaxTokens         int              `json:"max_tokens"`
	Model             string           `json:"model"`
	Source            string           `json:"source"`
	Temperature       float64          `json:"temperature"`
	TopP              float64          `json:"top_p"`
	Messages          []payloadMessage `json:"messages"`
}

type payloadMessage struct {
	Role    string         `json:"role"`
	Content string         `json:"content"`
	Images  []payloadImage `json:"images,omitempty"`
}

type payloadImage struct {
	Data string `json:"data"`
}

// BuildChatPayload serializes a normalized request into the upstream body.
func BuildChatPayload(norm *translator.NormalizedRequest) ([]byte, error) {
	p := chatPayload{
		FunctionImageGen:  norm.HasImage,
		FunctionWebSearch: true,
		MaxTokens:         norm.MaxTokens,
		Model:             norm.Model,
		Source:            norm.SourceTag,
		Temperature:       norm.Temperature,
		TopP:              norm.TopP,
		Messages:          make([]payloadMessage, 0, len(norm.Messages)),
	}
	if p.Source == "" {
		p.Source = translator.SourceTag(norm.HasImage)
	}
	for _, m := range norm.Messages {
		pm := payloadMessage{Role: m.Role, Content: m.Content}
		for _, img := range m.Images {
			pm.Images = append(pm.Images, payloadImage{Data: img.URL})
		}
		p.Messages = append(p.Messages, pm)
	}
	return json.Marshal(p)
}

// BuildImagePayload serializes the drawing request for a prompt.
func BuildImagePayload(prompt, size string) ([]byte, error) {
	messages := []payloadMessage{
		{Role: openai.ChatMessageRoleSystem, Content: constants.ImageGenSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: constants.ImageGenPromptPrefix + prompt},
	}
	steps := []struct {
		path  string
		value any
	}{
		{"function_image_gen", true},
		{"function_web_search", true},
		{"image_aspect_ratio", AspectFromSize(size)},
		{"image_style", constants.ImageGenStyle},
		{"max_tokens", constants.DefaultMaxTokens},
		{"messages", messages},
		{"model", constants.ImageGenModel},
		{"source", constants.SourceImageGen},
	}
	body := []byte(`{}`)
	var err error
	for _, s := range steps {
		if body, err = sjson.SetBytes(body, s.path, s.value); err != nil {
			return nil, err
		}
	}
	return body, nil
}

// AspectFromSize maps an OpenAI size ("1792x1024") or a ratio ("16:9") to
// one of the vendor ratios. Unknown or square sizes yield 1:1.
func AspectFromSize(size string) string {
	size = strings.ToLower(strings.TrimSpace(size))
	switch size {
	case "16:9", "9:16", "1:1":
		return size
	}
	w, h, ok := strings.Cut(size, "x")
	if !ok {
		return constants.DefaultAspectRatio
	}
	width, err1 := strconv.Atoi(strings.TrimSpace(w))
	height, err2 := strconv.Atoi(strings.TrimSpace(h))
	if err1 != nil || err2 != nil || width <= 0 || height <= 0 {
		return constants.DefaultAspectRatio
	}
	switch {
	case width > height:
		return "16:9"
	case height > width:
		return "9:16"
	default:
		return constants.DefaultAspectRatio
	}
}
