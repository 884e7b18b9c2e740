//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks

// Package service holds the marketplace core: the message store operations,
// the exchange state machine, the notification fan-out policy and the
// account, listing and inbox services around them.
package service

import (
	"context"
	"io"
	"log/slog"

	"skillswap-service/model"
)

type UserDirectory interface {
	FindUser(ctx context.Context, id uint) (*model.User, error)
}

type ListingDirectory interface {
	FindOffer(ctx context.Context, id uint) (*model.Offer, error)
	FindRequest(ctx context.Context, id uint) (*model.Request, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	Find(ctx context.Context, id uint) (*model.Message, error)
	ListFor(ctx context.Context, userID uint) ([]model.Message, error)
	ReadConversation(ctx context.Context, viewerID, otherID uint) ([]model.Message, error)
}

type ExchangeRepository interface {
	Create(ctx context.Context, exchange *model.Exchange) error
	Find(ctx context.Context, id uint) (*model.Exchange, error)
	Save(ctx context.Context, exchange *model.Exchange) error
	ListFor(ctx context.Context, userID uint) ([]model.Exchange, error)
}

// NotificationSink persists a notification for a user.
type NotificationSink interface {
	Create(ctx context.Context, userID uint, message string, kind model.NotificationType, link *string) (*model.Notification, error)
}

// Pusher delivers an already persisted notification to a live channel.
type Pusher interface {
	Push(ctx context.Context, notification *model.Notification) error
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func loggerOrDiscard(log *slog.Logger) *slog.Logger {
	if log != nil {
		return log
	}
	return discard
}
