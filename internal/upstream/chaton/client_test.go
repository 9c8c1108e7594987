package chaton

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"chaton2api-go/internal/config"
	"chaton2api-go/internal/constants"
	apperrors "chaton2api-go/internal/errors"
	"chaton2api-go/internal/signer"
	"chaton2api-go/internal/upstream"
	"github.com/stretchr/testify/require"
)

func signedBody(body string) *upstream.SignedRequest {
	return &upstream.SignedRequest{
		Body:       []byte(body),
		Credential: signer.Credential{Authorization: "Bearer tok", Date: "2024-05-01T00:00:00Z"},
	}
}

func TestStreamSendsVendorHeaders(t *testing.T) {
	type captured struct {
		req  *http.Request
		body []byte
	}
	seen := make(chan captured, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen <- captured{req: r.Clone(context.Background()), body: body}
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	c := NewWithHTTPClient(srv.URL, srv.Client())
	resp, err := c.Stream(context.Background(), signedBody(`{"model":"gpt-4o"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	payload, _ := io.ReadAll(resp.Body)
	require.Equal(t, "data: [DONE]\n\n", string(payload))

	rec := <-seen
	got, gotBody := rec.req, rec.body

	require.Equal(t, http.MethodPost, got.Method)
	require.Equal(t, `{"model":"gpt-4o"}`, string(gotBody))
	require.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
	require.Equal(t, "2024-05-01T00:00:00Z", got.Header.Get("Date"))
	require.Equal(t, constants.UpstreamClientTimeZone, got.Header.Get("Client-time-zone"))
	require.Equal(t, constants.UpstreamUserAgent, got.Header.Get("User-Agent"))
	require.Equal(t, "en-US", got.Header.Get("Accept-Language"))
	require.Equal(t, "hb", got.Header.Get("X-Cl-Options"))
	require.Equal(t, constants.UpstreamContentType, got.Header.Get("Content-Type"))
}

func TestStreamNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":"slow down"}`)
	}))
	defer srv.Close()

	_, err := NewWithHTTPClient(srv.URL, srv.Client()).Stream(context.Background(), signedBody(`{}`))
	var statusErr *apperrors.UpstreamStatusError
	require.True(t, errors.As(err, &statusErr), "got %v", err)
	require.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	require.Equal(t, `{"error":"slow down"}`, string(statusErr.Body))
	require.ErrorIs(t, err, apperrors.ErrUpstreamRequest)
	require.Equal(t, "upstream returned status 429", err.Error())
}

func TestStreamTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewWithHTTPClient(url, nil).Stream(context.Background(), signedBody(`{}`))
	require.ErrorIs(t, err, apperrors.ErrUpstreamRequest)
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = io.WriteString(w, "0123456789")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	c := NewWithHTTPClient("", srv.Client())

	data, err := c.Get(context.Background(), "download", srv.URL+"/ok", 64)
	require.NoError(t, err)
	require.Equal(t, "0123456789", string(data))

	_, err = c.Get(context.Background(), "download", srv.URL+"/ok", 4)
	require.Error(t, err)

	_, err = c.Get(context.Background(), "lookup", srv.URL+"/missing", 64)
	var statusErr *apperrors.UpstreamStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestNewDefaultsChatURL(t *testing.T) {
	c := New(config.UpstreamConfig{})
	require.Equal(t, constants.UpstreamChatURL, c.chatURL)
	require.NotNil(t, c.cli.Transport)

	c = New(config.UpstreamConfig{ChatURL: "http://127.0.0.1:9/chats/stream", ProxyURL: "http://proxy:3128"})
	require.Equal(t, "http://127.0.0.1:9/chats/stream", c.chatURL)
}
