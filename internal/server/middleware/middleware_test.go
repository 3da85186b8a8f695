// file: internal/server/middleware/middleware_test.go
// version: 1.1.0
// guid: 9f1b3d5c-7e0a-42f6-b8d2-4a6c8e0f2b74

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.POST("/echo", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimit_Allows(t *testing.T) {
	r := newRouter(NewIPRateLimiter(600, 10).Middleware())

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}

func TestRateLimit_Blocks(t *testing.T) {
	// Burst of 1 and a very slow refill: the second request must be rejected.
	r := newRouter(NewIPRateLimiter(1, 1).Middleware())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", w.Code)
	}
}

func TestMaxRequestBodySize_RejectsOversized(t *testing.T) {
	r := newRouter(MaxRequestBodySize(10))

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 100)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", w.Code)
	}
}

func TestMaxRequestBodySize_AllowsSmall(t *testing.T) {
	r := newRouter(MaxRequestBodySize(1024))

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("ok"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestMaxRequestBodySize_IgnoresGet(t *testing.T) {
	r := newRouter(MaxRequestBodySize(1))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
