package store

import (
	"context"

	"skillswap-service/model"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type MessageStore struct {
	db *gorm.DB
}

func NewMessageStore(db *gorm.DB) *MessageStore {
	return &MessageStore{db: db}
}

func withParticipants(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Sender").
		Preload("Recipient").
		Preload("RelatedOffer").
		Preload("RelatedRequest")
}

func (s *MessageStore) Create(ctx context.Context, message *model.Message) error {
	return omitAssociations(s.db.WithContext(ctx)).Create(message).Error
}

// Find loads one message with its participants and related listings.
func (s *MessageStore) Find(ctx context.Context, id uint) (*model.Message, error) {
	message := new(model.Message)
	if err := withParticipants(s.db.WithContext(ctx)).First(message, id).Error; err != nil {
		return nil, translate(err)
	}
	return message, nil
}

// ListFor returns every message userID sent or received, oldest first.
func (s *MessageStore) ListFor(ctx context.Context, userID uint) ([]model.Message, error) {
	messages := []model.Message{}
	err := withParticipants(s.db.WithContext(ctx)).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at asc, id asc").
		Find(&messages).Error
	return messages, err
}

// ReadConversation returns the messages exchanged between viewerID and
// otherID, oldest first, and marks the ones otherID sent to viewerID as read.
// Both steps run in one transaction. Messages viewerID sent are left as-is.
func (s *MessageStore) ReadConversation(ctx context.Context, viewerID, otherID uint) ([]model.Message, error) {
	messages := []model.Message{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := withParticipants(tx).
			Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
				viewerID, otherID, otherID, viewerID).
			Order("created_at asc, id asc").
			Find(&messages).Error
		if err != nil {
			return err
		}

		unread := lo.FilterMap(messages, func(m model.Message, _ int) (uint, bool) {
			return m.ID, m.RecipientID == viewerID && !m.Read
		})
		if len(unread) == 0 {
			return nil
		}
		return tx.Model(&model.Message{}).
			Where("id IN ?", unread).
			Update("read", true).Error
	})
	if err != nil {
		return nil, err
	}

	for i := range messages {
		if messages[i].RecipientID == viewerID && messages[i].SenderID == otherID {
			messages[i].Read = true
		}
	}
	return messages, nil
}
