package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chaton2api-go/internal/config"
	"chaton2api-go/internal/signer"
	"chaton2api-go/internal/storage"
	"chaton2api-go/internal/upstream/chaton"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Images.Dir = t.TempDir()
	cfg.Images.PublicBaseURL = "http://gw.example"
	return cfg
}

func buildTestEngine(t *testing.T, store storage.ImageStore, chatFn http.HandlerFunc) http.Handler {
	t.Helper()
	cfg := testConfig(t)
	if store == nil {
		fs := storage.NewFileStore(cfg.Images.Dir)
		require.NoError(t, fs.Initialize(context.Background()))
		store = fs
	}
	up := httptest.NewServer(chatFn)
	t.Cleanup(up.Close)
	return BuildEngine(cfg, Dependencies{
		Store:  store,
		Signer: signer.Static{Credential: signer.Credential{Authorization: "Bearer t", Date: "d"}},
		Client: chaton.NewWithHTTPClient(up.URL, up.Client()),
	})
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestEngineRoutes(t *testing.T) {
	engine := buildTestEngine(t, nil, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "data: {\"choices\":[{\"index\":0,\"delta\":{\"content\":\"pong\"}}]}\n\ndata: [DONE]\n\n")
	})

	rec := serve(engine, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", gjson.Get(rec.Body.String(), "status").String())
	require.Equal(t, "ok", gjson.Get(rec.Body.String(), "storage").String())

	rec = serve(engine, http.MethodGet, "/v1/models", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, gjson.Get(rec.Body.String(), "data").Array(), 4)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = serve(engine, http.MethodPost, "/v1/chat/completions", `{"messages":[{"role":"user","content":"ping"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "pong", gjson.Get(rec.Body.String(), "choices.0.message.content").String())

	rec = serve(engine, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "chaton2api_http_requests_total")

	rec = serve(engine, http.MethodGet, "/images/missing.png", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

type sickStore struct{ storage.ImageStore }

func (sickStore) Health(context.Context) error { return errors.New("disk offline") }

func TestHealthzReportsStoreFailure(t *testing.T) {
	engine := buildTestEngine(t, sickStore{}, http.NotFound)
	rec := serve(engine, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "degraded", gjson.Get(rec.Body.String(), "status").String())
}

func TestEngineUpstreamErrorBody(t *testing.T) {
	engine := buildTestEngine(t, nil, http.NotFound)
	rec := serve(engine, http.MethodPost, "/v1/chat/completions", `{"messages":[{"role":"user","content":"hi"}]}`)
	// vendor 404 surfaces as the standard error body
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "upstream returned status 404", gjson.Get(rec.Body.String(), "error.message").String())
	require.Equal(t, "invalid_request_error", gjson.Get(rec.Body.String(), "error.type").String())
}
