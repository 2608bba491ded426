package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORS())
	r.POST("/api/v1/solve", func(c *gin.Context) { c.Status(http.StatusOK) })

	// 预检请求直接以 204 结束。
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/solve", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Unexpected Allow-Origin: %q", got)
	}
	// 下载相关的响应头必须对浏览器可见。
	exposed := w.Header().Get("Access-Control-Expose-Headers")
	for _, header := range []string{"Content-Disposition", "X-Solve-Id"} {
		if !strings.Contains(exposed, header) {
			t.Errorf("Expected %s in Expose-Headers, got %q", header, exposed)
		}
	}
}

func TestLoggerWithSkipPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(LoggerWithSkipPaths(logger, "/healthz"))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if buf.Len() != 0 {
		t.Errorf("Expected no access log for skipped path, got %s", buf.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	if !strings.Contains(buf.String(), "/api/v1/ping") {
		t.Errorf("Expected access log for /api/v1/ping, got %s", buf.String())
	}
}
