package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/api"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/config"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/models"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/pages/finder"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/services"
)

// stubSendMessageService records the finder context it was called with.
type stubSendMessageService struct {
	seen services.FinderContext
}

func (s *stubSendMessageService) ListSendMessages(ctx context.Context) ([]models.SendMessageDetail, error) {
	s.seen, _ = services.FinderContextFrom(ctx)
	return []models.SendMessageDetail{}, nil
}

func (s *stubSendMessageService) FindSendMessageByID(ctx context.Context, sendMessageID int64) (*models.SendMessageDetail, error) {
	return nil, services.ErrSendMessageNotFound
}

func TestSetupRouter_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stop := make(chan struct{})
	defer close(stop)

	formatter, err := finder.NewFormatter("ko-KR", "Asia/Seoul")
	require.NoError(t, err)
	svc := &stubSendMessageService{}
	cfg := &config.Config{RateLimitRefillRate: 100, RateLimitBucketSize: 100}

	r, err := api.SetupRouter(cfg, svc, formatter, zap.NewNop(), stop)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/ping", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/finder/contacts", nil)
	req.Header.Set("X-Finder-Id", "finder-1")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), finder.EmptyTitle)
	assert.Equal(t, "finder-1", svc.seen.FinderID)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/finder/contacts/5", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupServiceRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	shutdownChan := make(chan struct{}, 1)
	r := api.SetupServiceRouter(zap.NewNop(), shutdownChan)

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"method":"unknown"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = post(`not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(`{"method":"shutdown"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])

	select {
	case <-shutdownChan:
	default:
		t.Fatal("expected shutdown signal")
	}
}
