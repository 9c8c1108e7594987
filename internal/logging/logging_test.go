package logging

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"chaton2api-go/internal/config"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestErrorKind(t *testing.T) {
	cases := []struct {
		status int
		hasErr bool
		want   string
	}{
		{0, true, "network_error"},
		{429, true, "upstream_429"},
		{403, false, "upstream_403"},
		{502, true, "upstream_5xx"},
		{404, true, "upstream_4xx"},
		{200, false, "ok"},
		{200, true, "error"},
	}
	for _, tc := range cases {
		if got := ErrorKind(tc.status, tc.hasErr); got != tc.want {
			t.Fatalf("ErrorKind(%d, %v) = %s, want %s", tc.status, tc.hasErr, got, tc.want)
		}
	}
}

func TestSetupWritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	cfg := config.Default()
	cfg.Logging.Debug = true
	cfg.Logging.File = path

	require.NoError(t, Setup(cfg))
	t.Cleanup(func() { _ = Setup(config.Default()) })
	require.Equal(t, log.DebugLevel, log.GetLevel())

	log.Info("hello file")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "hello file")
}

func TestWithReqAddsRequestFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/chat/completions", nil)
	c.Set("request_id", "rid-1")

	entry := WithReq(c, log.Fields{"model": "gpt-4o"})
	require.Equal(t, "rid-1", entry.Data["request_id"])
	require.Equal(t, "/v1/chat/completions", entry.Data["path"])
	require.Equal(t, "gpt-4o", entry.Data["model"])
}
