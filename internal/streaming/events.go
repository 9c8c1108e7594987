package streaming

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const chunkObject = "chat.completion.chunk"

// ClientEvent is one OpenAI chat.completion.chunk frame.
type ClientEvent struct {
	ID                string         `json:"id"`
	Object            string         `json:"object"`
	Created           int64          `json:"created"`
	Model             string         `json:"model"`
	SystemFingerprint string         `json:"system_fingerprint"`
	Choices           []ClientChoice `json:"choices"`
}

type ClientChoice struct {
	Index int         `json:"index"`
	Delta ClientDelta `json:"delta"`
}

type ClientDelta struct {
	Content string `json:"content"`
}

// Fingerprint returns a fresh "fp_" + 12 hex chars identifier.
func Fingerprint() string {
	return "fp_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// ImageMarkdown renders an image URL as message content.
func ImageMarkdown(url string) string {
	return "![Image](" + url + ")"
}

// envelope carries the per-line fields copied onto every frame built from that line.
type envelope struct {
	id      string
	created int64
	model   string
}

func (e envelope) event(index int, content string) *ClientEvent {
	return &ClientEvent{
		ID:                e.id,
		Object:            chunkObject,
		Created:           e.created,
		Model:             e.model,
		SystemFingerprint: Fingerprint(),
		Choices:           []ClientChoice{{Index: index, Delta: ClientDelta{Content: content}}},
	}
}

func nowUnix() int64 { return time.Now().Unix() }
