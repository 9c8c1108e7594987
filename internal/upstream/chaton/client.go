package chaton

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chaton2api-go/internal/config"
	"chaton2api-go/internal/constants"
	apperrors "chaton2api-go/internal/errors"
	"chaton2api-go/internal/logging"
	mw "chaton2api-go/internal/middleware"
	"chaton2api-go/internal/monitoring/tracing"
	"chaton2api-go/internal/upstream"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Client talks to the ChatOn API. One instance is shared by all requests.
type Client struct {
	chatURL string
	cli     *http.Client
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}

// New builds a client with one pooled transport.
func New(cfg config.UpstreamConfig) *Client {
	tr := &http.Transport{
		Proxy: proxyFunc(cfg.ProxyURL),
		DialContext: (&net.Dialer{
			Timeout:   durationOrDefault(cfg.DialTimeoutSec, constants.DefaultDialTimeout),
			KeepAlive: constants.DefaultKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   durationOrDefault(cfg.TLSHandshakeTimeoutSec, constants.DefaultTLSHandshakeTimeout),
		ResponseHeaderTimeout: durationOrDefault(cfg.ResponseHeaderTimeoutSec, constants.DefaultResponseHeaderTimeout),
		ExpectContinueTimeout: constants.DefaultExpectContinueTimeout,
		MaxIdleConns:          constants.BaseMaxIdleConns,
		MaxIdleConnsPerHost:   constants.BaseMaxIdleConnsPerHost,
		IdleConnTimeout:       constants.BaseIdleConnTimeout,
	}
	chatURL := strings.TrimSpace(cfg.ChatURL)
	if chatURL == "" {
		chatURL = constants.UpstreamChatURL
	}
	// no client-wide timeout: streams are bounded by the request context
	return &Client{chatURL: chatURL, cli: &http.Client{Transport: tr}}
}

// NewWithHTTPClient is used by tests to point at an httptest server.
func NewWithHTTPClient(chatURL string, cli *http.Client) *Client {
	if cli == nil {
		cli = http.DefaultClient
	}
	return &Client{chatURL: chatURL, cli: cli}
}

func proxyFunc(proxyURL string) func(*http.Request) (*url.URL, error) {
	if proxyURL != "" {
		if parsed, err := url.Parse(proxyURL); err == nil {
			return http.ProxyURL(parsed)
		}
	}
	return http.ProxyFromEnvironment
}

// applyHeaders sets the fixed vendor headers plus the signed credential.
func applyHeaders(req *http.Request, signed *upstream.SignedRequest) {
	req.Header.Set("Date", signed.Credential.Date)
	req.Header.Set("Authorization", signed.Credential.Authorization)
	req.Header.Set(constants.HeaderClientTimeZone, constants.UpstreamClientTimeZone)
	req.Header.Set("User-Agent", constants.UpstreamUserAgent)
	req.Header.Set("Accept-Language", constants.UpstreamAcceptLanguage)
	req.Header.Set(constants.HeaderClientOptions, constants.UpstreamClientOptions)
	req.Header.Set("Content-Type", constants.UpstreamContentType)
	req.Header.Set("Accept", "text/event-stream")
}

// Stream posts a signed body and returns the open event stream.
//
// IMPORTANT: caller MUST close resp.Body when err is nil. On a non-200
// answer the body is drained, closed and an *errors.UpstreamStatusError returned.
func (c *Client) Stream(ctx context.Context, signed *upstream.SignedRequest) (*http.Response, error) {
	ctx, span := tracing.StartSpan(ctx, "upstream/chaton", "ChatOn.Stream",
		trace.WithAttributes(
			attribute.String("http.method", http.MethodPost),
			attribute.String("http.url", c.chatURL),
			attribute.Int("upstream.body_bytes", len(signed.Body)),
		))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL, bytes.NewReader(signed.Body))
	if err != nil {
		tracing.EndSpan(span, err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamRequest, err)
	}
	applyHeaders(req, signed)

	resp, err := c.do(req, "chat")
	if err != nil {
		tracing.EndSpan(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		statusErr := &apperrors.UpstreamStatusError{StatusCode: resp.StatusCode, Body: readCapped(resp.Body, constants.MaxUpstreamErrorBody)}
		_ = resp.Body.Close()
		mw.RecordUpstreamError("chat", logging.ErrorKind(resp.StatusCode, false))
		tracing.EndSpan(span, statusErr)
		return nil, statusErr
	}
	tracing.EndSpan(span, nil)
	return resp, nil
}

// Get fetches url and returns the body, capped at limit bytes.
// Any non-200 status is returned as *errors.UpstreamStatusError.
func (c *Client) Get(ctx context.Context, endpoint, rawURL string, limit int64) ([]byte, error) {
	ctx, span := tracing.StartSpan(ctx, "upstream/chaton", "ChatOn.Get",
		trace.WithAttributes(
			attribute.String("http.method", http.MethodGet),
			attribute.String("upstream.endpoint", endpoint),
		))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		tracing.EndSpan(span, err)
		return nil, err
	}
	req.Header.Set("User-Agent", constants.UpstreamUserAgent)
	req.Header.Set("Accept-Language", constants.UpstreamAcceptLanguage)

	resp, err := c.do(req, endpoint)
	if err != nil {
		tracing.EndSpan(span, err)
		return nil, err
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		statusErr := &apperrors.UpstreamStatusError{StatusCode: resp.StatusCode, Body: readCapped(resp.Body, constants.MaxUpstreamErrorBody)}
		mw.RecordUpstreamError(endpoint, logging.ErrorKind(resp.StatusCode, false))
		tracing.EndSpan(span, statusErr)
		return nil, statusErr
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err == nil && int64(len(data)) > limit {
		err = fmt.Errorf("response exceeds %d bytes", limit)
	}
	tracing.EndSpan(span, err)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) do(req *http.Request, endpoint string) (*http.Response, error) {
	start := time.Now()
	resp, err := c.cli.Do(req)
	if err != nil {
		mw.RecordUpstream(endpoint, time.Since(start), 0, true)
		mw.RecordUpstreamError(endpoint, apperrors.NetworkErrorKind(err))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamRequest, err)
	}
	mw.RecordUpstream(endpoint, time.Since(start), resp.StatusCode, false)
	return resp, nil
}

func readCapped(r io.Reader, n int64) []byte {
	b, _ := io.ReadAll(io.LimitReader(r, n))
	return b
}
