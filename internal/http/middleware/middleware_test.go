// README: Tests for client id resolution, rate limiting and panic recovery.
package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"voyage/internal/http/middleware"
)

func newTestRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.ClientID())
	r.Use(extra...)
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"client_id": middleware.ClientIDFrom(c)})
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func get(r http.Handler, path, clientID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "203.0.113.7:5555"
	if clientID != "" {
		req.Header.Set(middleware.ClientIDHeader, clientID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestClientID_Header(t *testing.T) {
	w := get(newTestRouter(), "/test", "browser-42")
	if !strings.Contains(w.Body.String(), `"client_id":"browser-42"`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestClientID_FallsBackToIP(t *testing.T) {
	for _, header := range []string{"", "has space", strings.Repeat("x", 65)} {
		w := get(newTestRouter(), "/test", header)
		if !strings.Contains(w.Body.String(), `"client_id":"ip:203.0.113.7"`) {
			t.Errorf("header %q: unexpected body %s", header, w.Body.String())
		}
	}
}

func TestRateLimit_PerClient(t *testing.T) {
	rl := middleware.NewRateLimiter(2)
	r := newTestRouter(rl.Limit())

	for i := 0; i < 2; i++ {
		if w := get(r, "/test", "a"); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
	if w := get(r, "/test", "a"); w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
	if w := get(r, "/test", "b"); w.Code != http.StatusOK {
		t.Errorf("other client: expected 200, got %d", w.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newTestRouter(middleware.NewRateLimiter(0).Limit())
	for i := 0; i < 50; i++ {
		if w := get(r, "/test", "a"); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}

func TestRateLimit_Sweep(t *testing.T) {
	rl := middleware.NewRateLimiter(1)
	r := newTestRouter(rl.Limit())
	get(r, "/test", "a")
	get(r, "/test", "b")

	if n := rl.Sweep(0); n != 2 {
		t.Errorf("expected 2 swept, got %d", n)
	}
	if w := get(r, "/test", "a"); w.Code != http.StatusOK {
		t.Errorf("after sweep: expected 200, got %d", w.Code)
	}
}

func TestRecovery(t *testing.T) {
	w := get(newTestRouter(), "/panic", "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"success":false`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestCORS_Preflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CORS([]string{"https://app.example"}))
	r.POST("/api/generate-itinerary", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/generate-itinerary", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("unexpected allow-origin %q", got)
	}
}
