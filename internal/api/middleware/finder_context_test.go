package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/api/middleware"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/services"
)

func TestFinderContextMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.FinderContextMiddleware())

	var got services.FinderContext
	var found bool
	r.GET("/finder/contacts", func(c *gin.Context) {
		got, found = services.FinderContextFrom(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/finder/contacts", nil)
	req.Header.Set(middleware.HeaderFinderID, "finder-1")
	req.Header.Set("Authorization", "Bearer t")
	req.Header.Set("Cookie", "sid=abc")
	r.ServeHTTP(w, req)

	require.True(t, found)
	assert.Equal(t, "finder-1", got.FinderID)
	assert.Equal(t, "Bearer t", got.Authorization)
	assert.Equal(t, "sid=abc", got.Cookie)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)

	r := gin.New()
	r.Use(middleware.RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ok", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-1")
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Header().Get(middleware.HeaderRequestID))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/boom", nil)
	r.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}
