package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRequestIDRouter(captured *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		*captured = RequestIDFromContext(c)
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequestID_Generated(t *testing.T) {
	var fromContext string
	r := newRequestIDRouter(&fromContext)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	header := w.Header().Get("X-Request-ID")
	if header == "" {
		t.Fatal("expected a generated X-Request-ID header")
	}
	if fromContext != header {
		t.Errorf("context ID %q does not match header %q", fromContext, header)
	}
}

func TestRequestID_HonorsClientID(t *testing.T) {
	var fromContext string
	r := newRequestIDRouter(&fromContext)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "  trace-abc-123  ")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "trace-abc-123" {
		t.Errorf("header = %q, want trimmed client ID", got)
	}
	if fromContext != "trace-abc-123" {
		t.Errorf("context ID = %q, want %q", fromContext, "trace-abc-123")
	}
}

func TestRequestID_CapsLongClientID(t *testing.T) {
	var fromContext string
	r := newRequestIDRouter(&fromContext)

	long := strings.Repeat("x", 200)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", long)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); len(got) != maxRequestIDLength {
		t.Errorf("header length = %d, want %d", len(got), maxRequestIDLength)
	}
	if fromContext != long[:maxRequestIDLength] {
		t.Error("context ID should be the capped prefix of the client ID")
	}
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if got := RequestIDFromContext(c); got != "" {
		t.Errorf("expected empty string without middleware, got %q", got)
	}
}
