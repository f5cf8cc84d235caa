package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nexora-chat/internal/ratelimit"
	"nexora-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newTestEngine()
	r.Use(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newTestEngine()
	r.POST("/api/chat/:userId",
		RateLimitMiddleware(ratelimit.NewLocal(2), ByUserParam("chat"), logger.NewNop()),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/chat/u1", nil))
		codes = append(codes, w.Code)
		if i == 2 {
			assert.Contains(t, w.Body.String(), "RATE_LIMITED")
			assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/chat/u2", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecoveryHidesPanicOutsideDebug(t *testing.T) {
	tests := []struct {
		name       string
		debug      bool
		wantDetail bool
	}{
		{name: "release", debug: false, wantDetail: false},
		{name: "debug", debug: true, wantDetail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestEngine()
			r.Use(Recovery(logger.NewNop(), tt.debug))
			r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
			assert.Equal(t, tt.wantDetail, strings.Contains(w.Body.String(), "kaboom"))
		})
	}
}

func TestUpgradeMiddleware(t *testing.T) {
	r := newTestEngine()
	connected := 0
	r.Use(UpgradeMiddleware(func(c *gin.Context) {
		connected++
		c.Status(http.StatusSwitchingProtocols)
	}))
	r.GET("/api/health", func(c *gin.Context) { c.String(http.StatusOK, "routed") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "routed", w.Body.String())
	assert.Equal(t, 0, connected)

	for _, path := range []string{"/api/health", "/unmatched"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Connection", "Upgrade")
		req.Header.Set("Upgrade", "websocket")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotContains(t, w.Body.String(), "routed", path)
	}
	assert.Equal(t, 2, connected)
}
