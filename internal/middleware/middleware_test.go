package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiter_BlocksWhenExhaustedAndRefills(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	t.Cleanup(rl.Stop)
	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	r := gin.New()
	r.POST("/submit", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		r.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusNoContent, do().Code)
	require.Equal(t, http.StatusNoContent, do().Code)

	blocked := do()
	require.Equal(t, http.StatusTooManyRequests, blocked.Code)
	require.Equal(t, "60", blocked.Header().Get("Retry-After"))
	require.Contains(t, blocked.Body.String(), "RATE_LIMIT_EXCEEDED")

	clock = clock.Add(time.Minute)
	require.Equal(t, http.StatusNoContent, do().Code)
}

func TestRateLimiter_CleanupDropsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	t.Cleanup(rl.Stop)
	clock := time.Now()
	rl.now = func() time.Time { return clock }

	require.True(t, rl.Allow("198.51.100.1"))
	clock = clock.Add(10 * time.Second)
	rl.cleanup()
	require.Empty(t, rl.visitors)
}

func serveBrotli(t *testing.T, body string, acceptEncoding string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.Use(Brotli())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, body) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if acceptEncoding != "" {
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBrotli_CompressesLargeBodies(t *testing.T) {
	body := strings.Repeat("Frequently asked question. ", 200)
	w := serveBrotli(t, body, "gzip, br")

	require.Equal(t, "br", w.Header().Get("Content-Encoding"))
	decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
	require.NoError(t, err)
	require.Equal(t, body, string(decoded))
}

func TestBrotli_PassesSmallBodiesThrough(t *testing.T) {
	w := serveBrotli(t, "ok", "br")

	require.Empty(t, w.Header().Get("Content-Encoding"))
	require.Equal(t, "ok", w.Body.String())
}

func TestBrotli_RespectsAcceptEncoding(t *testing.T) {
	body := strings.Repeat("x", 4096)
	w := serveBrotli(t, body, "gzip")

	require.Empty(t, w.Header().Get("Content-Encoding"))
	require.Equal(t, body, w.Body.String())
}

func TestCacheHeaders(t *testing.T) {
	r := gin.New()
	r.GET("/static", CacheControl(3600), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/form", NoStore(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static", nil))
	require.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/form", nil))
	require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
