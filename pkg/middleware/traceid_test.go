package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func traceRequest(t *testing.T, inbound string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if inbound != "" {
		req.Header.Set("X-Trace-ID", inbound)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestTraceIDMinted(t *testing.T) {
	w := traceRequest(t, "")
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}

func TestTraceIDPropagated(t *testing.T) {
	w := traceRequest(t, "trace-from-caller")
	assert.Equal(t, "trace-from-caller", w.Header().Get("X-Trace-ID"))
}

func TestTraceIDOversizedReplaced(t *testing.T) {
	w := traceRequest(t, strings.Repeat("x", 65))
	got := w.Header().Get("X-Trace-ID")
	assert.NotEmpty(t, got)
	assert.NotEqual(t, strings.Repeat("x", 65), got)
}
