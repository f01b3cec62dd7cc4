package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	httptransport "voyage/internal/http"
	"voyage/internal/http/handlers"
	"voyage/internal/http/middleware"
	"voyage/internal/itinerary"
	"voyage/internal/modules/chat"
	"voyage/internal/testutil"
)

type parisPlanner struct{}

func (parisPlanner) Generate(context.Context, string) (*itinerary.Itinerary, error) {
	it := testutil.Paris()
	return &it, nil
}

func (parisPlanner) Refine(_ context.Context, current itinerary.Itinerary, _ string) (*itinerary.Itinerary, error) {
	return &current, nil
}

func newRouter(perMinute int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	p := parisPlanner{}
	reg := chat.NewRegistry(func() *chat.Chat { return chat.New(p, p) }, nil)
	return httptransport.NewRouter(httptransport.RouterDeps{
		Itineraries: handlers.NewItineraryHandler(p, nil, time.Second),
		Sessions:    handlers.NewSessionHandler(reg, nil, time.Second),
		RateLimiter: middleware.NewRateLimiter(perMinute),
		CORSOrigins: []string{"http://localhost:5173"},
	})
}

func post(r http.Handler, path, body, client string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ClientIDHeader, client)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(0).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRouter_GenerateEndToEnd(t *testing.T) {
	w := post(newRouter(0), "/api/generate-itinerary", `{"prompt":"Paris"}`, "a")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestRouter_TripsAbsentWithoutStore(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(0).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/trips", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_RateLimitPerClient(t *testing.T) {
	r := newRouter(2)
	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, post(r, "/api/generate-itinerary", `{"prompt":"x"}`, "a").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, post(r, "/api/generate-itinerary", `{"prompt":"x"}`, "a").Code)
	assert.Equal(t, http.StatusOK, post(r, "/api/generate-itinerary", `{"prompt":"x"}`, "b").Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/generate-itinerary", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	newRouter(0).ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
