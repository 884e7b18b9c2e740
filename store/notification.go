package store

import (
	"context"

	"skillswap-service/model"

	"gorm.io/gorm"
)

type NotificationStore struct {
	db *gorm.DB
}

func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

// Create persists a notification for userID. It is the notification sink the
// fan-out policy writes to.
func (s *NotificationStore) Create(ctx context.Context, userID uint, message string, kind model.NotificationType, link *string) (*model.Notification, error) {
	notification := &model.Notification{
		UserID:  userID,
		Message: message,
		Type:    kind,
		Link:    link,
	}
	if err := s.db.WithContext(ctx).Create(notification).Error; err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *NotificationStore) Find(ctx context.Context, id uint) (*model.Notification, error) {
	notification := new(model.Notification)
	if err := s.db.WithContext(ctx).First(notification, id).Error; err != nil {
		return nil, translate(err)
	}
	return notification, nil
}

// ListFor returns the notifications of userID, newest first. A positive
// limit caps the result.
func (s *NotificationStore) ListFor(ctx context.Context, userID uint, limit int) ([]model.Notification, error) {
	notifications := []model.Notification{}
	query := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&notifications).Error
	return notifications, err
}

func (s *NotificationStore) MarkRead(ctx context.Context, notification *model.Notification) error {
	notification.Read = true
	return s.db.WithContext(ctx).Model(notification).Update("read", true).Error
}

func (s *NotificationStore) Delete(ctx context.Context, notification *model.Notification) error {
	return s.db.WithContext(ctx).Delete(notification).Error
}

func (s *NotificationStore) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}
