package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/config"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/models"
)

const maxAPIResponseBytes = 4 << 20

// APIError is returned when the finder API answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string // From the response body, may be empty
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("finder api responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("finder api responded with status %d: %s", e.StatusCode, e.Message)
}

// UserMessage implements MessageCarrier.
func (e *APIError) UserMessage() string {
	return e.Message
}

// apiErrorBody covers both error shapes the backend produces.
type apiErrorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// remoteSendMessageService implements ISendMessageService against the backend finder API.
type remoteSendMessageService struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewRemoteSendMessageService creates a service that calls the finder API at cfg.FinderApiBaseURL.
// A nil httpClient gets one with cfg.FinderApiTimeout.
func NewRemoteSendMessageService(cfg *config.Config, httpClient *http.Client, log *zap.Logger) ISendMessageService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.FinderApiTimeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &remoteSendMessageService{
		baseURL:    strings.TrimRight(cfg.FinderApiBaseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

// ListSendMessages calls GET /finder/send-messages.
func (s *remoteSendMessageService) ListSendMessages(ctx context.Context) ([]models.SendMessageDetail, error) {
	var result []models.SendMessageDetail
	if err := s.get(ctx, "/finder/send-messages", &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = []models.SendMessageDetail{}
	}
	return result, nil
}

// FindSendMessageByID calls GET /finder/send-messages/{id}.
func (s *remoteSendMessageService) FindSendMessageByID(ctx context.Context, sendMessageID int64) (*models.SendMessageDetail, error) {
	var result models.SendMessageDetail
	path := "/finder/send-messages/" + url.PathEscape(strconv.FormatInt(sendMessageID, 10))
	if err := s.get(ctx, path, &result); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %d", ErrSendMessageNotFound, sendMessageID)
		}
		return nil, err
	}
	return &result, nil
}

func (s *remoteSendMessageService) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create finder api request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if fc, ok := FinderContextFrom(ctx); ok {
		if fc.Authorization != "" {
			req.Header.Set("Authorization", fc.Authorization)
		}
		if fc.Cookie != "" {
			req.Header.Set("Cookie", fc.Cookie)
		}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to contact finder api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read finder api response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody apiErrorBody
		if json.Unmarshal(body, &errBody) == nil {
			apiErr.Message = errBody.Message
			if apiErr.Message == "" {
				apiErr.Message = errBody.Detail
			}
		}
		s.log.Warn("finder api returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode finder api response from %s: %w", path, err)
	}
	return nil
}
