package streaming

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"chaton2api-go/internal/constants"
	"chaton2api-go/internal/logging"
	mw "chaton2api-go/internal/middleware"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Mode selects what Run does with parsed deltas.
type Mode int

const (
	// ModePassthrough writes one frame per delta as soon as it is read.
	ModePassthrough Mode = iota
	// ModeAggregate buffers everything and writes nothing.
	ModeAggregate
)

func (m Mode) String() string {
	if m == ModeAggregate {
		return "aggregate"
	}
	return "passthrough"
}

const doneSentinel = "[DONE]"

// ErrSinkWrite wraps failures writing to the client.
var ErrSinkWrite = errors.New("client write failed")

// SyntheticDone terminates a stream whose upstream ended without a sentinel.
const SyntheticDone = "data: " + doneSentinel

// Options configures one Translator.
type Options struct {
	Mode Mode
	// Images turns on delta.images handling.
	Images bool
	// Model fills frames whose upstream event carries no model.
	Model string
}

// FrameSink receives pass-through output.
type FrameSink interface {
	WriteEvent(ev *ClientEvent) error
	// WriteDone forwards the terminating line as received.
	WriteDone(line string) error
}

// Result summarises one translated stream.
type Result struct {
	Text    string
	Images  []string
	Frames  int
	Done    bool
	Skipped int
}

// Content is the buffered assistant message: text, then one markdown line per image.
func (r *Result) Content() string {
	if len(r.Images) == 0 {
		return r.Text
	}
	var sb strings.Builder
	sb.WriteString(r.Text)
	for _, u := range r.Images {
		sb.WriteString("\n")
		sb.WriteString(ImageMarkdown(u))
	}
	return sb.String()
}

// Translator re-frames one upstream event stream. Not safe for reuse across requests.
type Translator struct {
	opts   Options
	logger *log.Entry
	text   strings.Builder
	res    Result
}

func New(opts Options, logger *log.Entry) *Translator {
	return &Translator{opts: opts, logger: logging.OrDefault(logger)}
}

// Run consumes r until the sentinel or EOF. Malformed lines are skipped.
// In pass-through mode a sink write failure stops the loop and is returned.
func (t *Translator) Run(r io.Reader, sink FrameSink) (*Result, error) {
	if t.opts.Mode == ModePassthrough && sink == nil {
		return nil, fmt.Errorf("passthrough mode needs a sink")
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, constants.SSEScannerInitialBufferSize), constants.SSEScannerMaxBufferSize)

	var runErr error
	for scanner.Scan() {
		line := scanner.Text()
		payload, ok := dataPayload(line)
		if !ok {
			continue
		}
		if strings.EqualFold(payload, doneSentinel) {
			t.res.Done = true
			if t.opts.Mode == ModePassthrough {
				if err := sink.WriteDone(line); err != nil {
					runErr = fmt.Errorf("%w: %v", ErrSinkWrite, err)
				}
			}
			break
		}
		if err := t.handlePayload(payload, sink); err != nil {
			runErr = err
			break
		}
	}
	if runErr == nil {
		if err := scanner.Err(); err != nil {
			runErr = fmt.Errorf("read upstream stream: %w", err)
		}
	}

	if runErr == nil && !t.res.Done && t.opts.Mode == ModePassthrough {
		if err := sink.WriteDone(SyntheticDone); err != nil {
			runErr = fmt.Errorf("%w: %v", ErrSinkWrite, err)
		}
	}
	if t.res.Skipped > 0 {
		mw.RecordSkippedLines("invalid_json", t.res.Skipped)
	}

	t.res.Text = t.text.String()
	res := t.res
	return &res, runErr
}

// dataPayload strips the "data:" marker. Lines without it are not events.
func dataPayload(line string) (string, bool) {
	if !strings.HasPrefix(line, "data:") {
		return "", false
	}
	return strings.TrimSpace(line[len("data:"):]), true
}

func (t *Translator) handlePayload(payload string, sink FrameSink) error {
	if !gjson.Valid(payload) {
		t.res.Skipped++
		t.logger.WithField("line", truncate(payload, 200)).Warn("skipping malformed upstream event")
		return nil
	}
	ev := gjson.Parse(payload)
	if !ev.IsObject() {
		t.res.Skipped++
		t.logger.WithField("line", truncate(payload, 200)).Warn("skipping non-object upstream event")
		return nil
	}
	if isControlEvent(ev) {
		mw.RecordSkippedLines("control", 1)
		return nil
	}

	env := t.envelopeOf(ev)
	if sources := webSources(ev); sources != "" {
		if err := t.emit(sink, env, 0, sources); err != nil {
			return err
		}
	}

	for i, choice := range ev.Get("choices").Array() {
		index := i
		if idx := choice.Get("index"); idx.Type == gjson.Number {
			index = int(idx.Int())
		}
		delta := choice.Get("delta")
		if content := delta.Get("content"); content.Type == gjson.String {
			if err := t.emit(sink, env, index, content.String()); err != nil {
				return err
			}
		}
		if !t.opts.Images {
			continue
		}
		for _, img := range delta.Get("images").Array() {
			url := img.Get("data")
			if url.Type != gjson.String || url.String() == "" {
				continue
			}
			if t.opts.Mode == ModeAggregate {
				t.res.Images = append(t.res.Images, url.String())
				continue
			}
			if err := t.emit(sink, env, index, ImageMarkdown(url.String())); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Translator) emit(sink FrameSink, env envelope, index int, content string) error {
	if t.opts.Mode == ModeAggregate {
		t.text.WriteString(content)
		return nil
	}
	if err := sink.WriteEvent(env.event(index, content)); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}
	t.res.Frames++
	return nil
}

func (t *Translator) envelopeOf(ev gjson.Result) envelope {
	env := envelope{
		id:      ev.Get("id").String(),
		created: ev.Get("created").Int(),
		model:   ev.Get("model").String(),
	}
	if env.id == "" {
		env.id = uuid.NewString()
	}
	if env.created <= 0 {
		env.created = nowUnix()
	}
	if env.model == "" {
		env.model = t.opts.Model
	}
	return env
}

// isControlEvent matches keep-alives and telemetry that carry no text.
func isControlEvent(ev gjson.Result) bool {
	if ev.Get("ping").Exists() {
		return true
	}
	data := ev.Get("data")
	if !data.Exists() {
		return false
	}
	if data.Get("analytics").Exists() {
		return true
	}
	return data.Get("operation").Exists() && data.Get("message").Exists()
}

// webSources renders data.web.sources[].url as one text delta, or "".
func webSources(ev gjson.Result) string {
	var urls []string
	for _, src := range ev.Get("data.web.sources").Array() {
		if u := strings.TrimSpace(src.Get("url").String()); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return ""
	}
	return "\n" + strings.Join(urls, "\n\n") + "\n"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

