package service

import (
	"context"
	"fmt"

	"skillswap-service/model"
)

// DefaultLatest is how many notifications a socket gets when it joins.
const DefaultLatest = 10

type NotificationRepository interface {
	NotificationSink
	Find(ctx context.Context, id uint) (*model.Notification, error)
	ListFor(ctx context.Context, userID uint, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, notification *model.Notification) error
	Delete(ctx context.Context, notification *model.Notification) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

// NotificationService is the inbox side of notifications.
type NotificationService struct {
	notifications NotificationRepository
}

func NewNotificationService(notifications NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) List(ctx context.Context, userID uint) ([]model.Notification, error) {
	notifications, err := s.notifications.ListFor(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationService) Latest(ctx context.Context, userID uint, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = DefaultLatest
	}
	notifications, err := s.notifications.ListFor(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	count, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one of userID's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) (*model.Notification, error) {
	notification, err := s.owned(ctx, userID, notificationID)
	if err != nil {
		return nil, err
	}
	if err := s.notifications.MarkRead(ctx, notification); err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return notification, nil
}

func (s *NotificationService) Delete(ctx context.Context, userID, notificationID uint) error {
	notification, err := s.owned(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if err := s.notifications.Delete(ctx, notification); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}

func (s *NotificationService) owned(ctx context.Context, userID, notificationID uint) (*model.Notification, error) {
	notification, err := s.notifications.Find(ctx, notificationID)
	if err != nil {
		return nil, lookupError(err, "Notification not found")
	}
	if notification.UserID != userID {
		return nil, newError(KindUnauthorized, "Not authorized to access this notification")
	}
	return notification, nil
}
