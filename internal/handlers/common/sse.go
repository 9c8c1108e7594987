package common

import (
	"encoding/json"
	"net/http"

	"chaton2api-go/internal/streaming"
	"github.com/gin-gonic/gin"
)

// SSEWriteEvent writes an SSE event with the given name and JSON payload.
func SSEWriteEvent(w http.ResponseWriter, flusher http.Flusher, event string, payload any) error {
	if event != "" {
		if _, err := w.Write([]byte("event: " + event + "\n")); err != nil {
			return err
		}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	if _, err := w.Write([]byte("\n\n")); err != nil {
		return err
	}
	if flusher != nil {
		flusher.Flush()
	}
	return nil
}

// SSEWriteData writes a generic SSE data line with JSON payload (no event name).
func SSEWriteData(w http.ResponseWriter, flusher http.Flusher, payload any) error {
	return SSEWriteEvent(w, flusher, "", payload)
}

// SSEWriteRaw writes one already formatted line followed by a blank line.
func SSEWriteRaw(w http.ResponseWriter, flusher http.Flusher, line string) error {
	if _, err := w.Write([]byte(line + "\n\n")); err != nil {
		return err
	}
	if flusher != nil {
		flusher.Flush()
	}
	return nil
}

// PrepareSSE sets standard headers for SSE and returns writer/ flusher pair.
func PrepareSSE(c *gin.Context) (gin.ResponseWriter, http.Flusher) {
	c.Header("Content-Type", "text/event-stream; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	w := c.Writer
	fl, _ := w.(http.Flusher)
	if fl != nil {
		fl.Flush()
	}
	return w, fl
}

// SSESink adapts a gin response to streaming.FrameSink, flushing every frame.
type SSESink struct {
	w  http.ResponseWriter
	fl http.Flusher
}

func NewSSESink(c *gin.Context) *SSESink {
	w, fl := PrepareSSE(c)
	return &SSESink{w: w, fl: fl}
}

func (s *SSESink) WriteEvent(ev *streaming.ClientEvent) error {
	return SSEWriteData(s.w, s.fl, ev)
}

func (s *SSESink) WriteDone(line string) error {
	return SSEWriteRaw(s.w, s.fl, line)
}
