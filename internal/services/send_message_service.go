package services

import (
	"context"
	"errors"

	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/models"
)

// ISendMessageService returns the landlord proposals addressed to the
// current finder. The finder is taken from ctx (see WithFinderContext).
// Errors meant to be shown to the user must implement MessageCarrier; the
// text of any other error is logged but never displayed.
type ISendMessageService interface {
	ListSendMessages(ctx context.Context) ([]models.SendMessageDetail, error)
	FindSendMessageByID(ctx context.Context, sendMessageID int64) (*models.SendMessageDetail, error)
}

// MessageCarrier is implemented by errors that carry a message meant for the user.
type MessageCarrier interface {
	UserMessage() string
}

var (
	ErrSendMessageNotFound = errors.New("send message not found")
	ErrFinderNotIdentified = errors.New("finder not identified")
)

// FinderContext is the caller identity forwarded from the incoming page
// request. It is passed through as-is and never verified here.
type FinderContext struct {
	FinderID      string
	Authorization string
	Cookie        string
}

type finderContextKey struct{}

// WithFinderContext returns a copy of ctx carrying fc.
func WithFinderContext(ctx context.Context, fc FinderContext) context.Context {
	return context.WithValue(ctx, finderContextKey{}, fc)
}

// FinderContextFrom returns the FinderContext stored in ctx, if any.
func FinderContextFrom(ctx context.Context) (FinderContext, bool) {
	fc, ok := ctx.Value(finderContextKey{}).(FinderContext)
	return fc, ok
}
