package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Recover from panic", func(t *testing.T) {
		router := gin.New()
		router.Use(Recovery())
		router.GET("/panic", func(c *gin.Context) {
			panic("test panic")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/panic", nil))

		if w.Code != 500 {
			t.Fatalf("Expected status 500, got %d", w.Code)
		}
		var body map[string]map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, "invalid_request_error", body["error"]["type"])
		require.Nil(t, body["error"]["param"])
		require.Nil(t, body["error"]["code"])
		require.Contains(t, body["error"]["message"], "test panic")
	})

	t.Run("Normal request without panic", func(t *testing.T) {
		router := gin.New()
		router.Use(Recovery())
		router.GET("/normal", func(c *gin.Context) {
			c.String(200, "OK")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/normal", nil))

		if w.Code != 200 {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
	})
}

func TestRecoveryWithWriter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	called := false
	router := gin.New()
	router.Use(RecoveryWithWriter(func(c *gin.Context, err any) { called = true }))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/panic", nil))

	if !called {
		t.Fatal("Expected custom writer to be called")
	}
	if w.Code != 500 {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}
}

func TestSafeGo(t *testing.T) {
	done := make(chan bool)
	SafeGo("test-goroutine", func() {
		defer func() { done <- true }()
		panic("goroutine panic")
	})
	<-done
}
