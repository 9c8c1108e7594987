package common

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chaton2api-go/internal/streaming"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type flushRecorder struct {
	http.ResponseWriter
	flushed bool
}

func (f *flushRecorder) Flush() { f.flushed = true }

func TestSSEWriteEventAndRaw(t *testing.T) {
	rr := httptest.NewRecorder()
	fr := &flushRecorder{ResponseWriter: rr}
	payload := map[string]any{"hello": "world"}
	if err := SSEWriteEvent(fr, fr, "greeting", payload); err != nil {
		t.Fatalf("SSEWriteEvent: %v", err)
	}
	if !fr.flushed {
		t.Fatalf("expected flush after event")
	}
	body := rr.Body.Bytes()
	if !bytes.Contains(body, []byte("event: greeting\n")) || !bytes.Contains(body, []byte("data: {")) {
		t.Fatalf("unexpected body: %s", string(body))
	}
	if err := SSEWriteRaw(fr, fr, "data: [DONE]"); err != nil {
		t.Fatalf("SSEWriteRaw: %v", err)
	}
	if !bytes.HasSuffix(rr.Body.Bytes(), []byte("data: [DONE]\n\n")) {
		t.Fatalf("missing DONE marker: %s", rr.Body.String())
	}
}

func TestSSESinkFrames(t *testing.T) {
	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/chat/completions", nil)

	sink := NewSSESink(c)
	ev := &streaming.ClientEvent{
		ID: "x", Object: "chat.completion.chunk", Created: 1, Model: "gpt-4o", SystemFingerprint: "fp_000000000000",
		Choices: []streaming.ClientChoice{{Index: 0, Delta: streaming.ClientDelta{Content: "hi"}}},
	}
	require.NoError(t, sink.WriteEvent(ev))
	require.NoError(t, sink.WriteDone("data: [DONE]"))

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/event-stream"))
	frames := strings.Split(strings.TrimSuffix(rr.Body.String(), "\n\n"), "\n\n")
	require.Len(t, frames, 2)
	require.Equal(t, "hi", gjson.Get(strings.TrimPrefix(frames[0], "data: "), "choices.0.delta.content").String())
	require.Equal(t, "data: [DONE]", frames[1])
}
