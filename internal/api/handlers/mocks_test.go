package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/models"
)

// --- Mocks ---

// MockSendMessageService
type MockSendMessageService struct {
	mock.Mock
}

func (m *MockSendMessageService) ListSendMessages(ctx context.Context) ([]models.SendMessageDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SendMessageDetail), args.Error(1)
}

func (m *MockSendMessageService) FindSendMessageByID(ctx context.Context, sendMessageID int64) (*models.SendMessageDetail, error) {
	args := m.Called(ctx, sendMessageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SendMessageDetail), args.Error(1)
}

func strPtr(s string) *string { return &s }
