package service

import (
	"context"
	"fmt"
	"strings"

	"skillswap-service/model"

	"github.com/samber/lo"
)

type MessageService struct {
	users    UserDirectory
	messages MessageRepository
	fanout   *Fanout
}

func NewMessageService(users UserDirectory, messages MessageRepository, fanout *Fanout) *MessageService {
	return &MessageService{users: users, messages: messages, fanout: fanout}
}

type SendMessageInput struct {
	RecipientID      uint
	Content          string
	RelatedOfferID   *uint
	RelatedRequestID *uint
}

// SendMessage stores a direct message from senderID and notifies the
// recipient. The returned message has its participants and related listings
// loaded. A failed notification does not fail the send.
func (s *MessageService) SendMessage(ctx context.Context, senderID uint, in SendMessageInput) (*model.Message, error) {
	content := strings.TrimSpace(in.Content)
	if in.RecipientID == 0 || content == "" {
		return nil, newError(KindValidation, "Recipient and message content are required")
	}

	if _, err := s.users.FindUser(ctx, in.RecipientID); err != nil {
		return nil, lookupError(err, "Recipient user not found")
	}
	if senderID == in.RecipientID {
		return nil, newError(KindSelfReference, "Cannot send message to yourself.")
	}
	sender, err := s.users.FindUser(ctx, senderID)
	if err != nil {
		return nil, lookupError(err, "Sender user not found")
	}

	message := &model.Message{
		SenderID:         senderID,
		RecipientID:      in.RecipientID,
		Content:          content,
		RelatedOfferID:   lo.EmptyableToPtr(lo.FromPtr(in.RelatedOfferID)),
		RelatedRequestID: lo.EmptyableToPtr(lo.FromPtr(in.RelatedRequestID)),
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	_ = s.fanout.MessageSent(ctx, sender, message)

	populated, err := s.messages.Find(ctx, message.ID)
	if err != nil {
		return nil, fmt.Errorf("load message: %w", err)
	}
	return populated, nil
}

// Conversation returns the conversation between userID and otherUserID,
// oldest first, after marking what otherUserID sent as read.
func (s *MessageService) Conversation(ctx context.Context, userID, otherUserID uint) ([]model.Message, error) {
	if otherUserID == 0 {
		return nil, newError(KindValidation, "Other user is required")
	}
	messages, err := s.messages.ReadConversation(ctx, userID, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("read conversation: %w", err)
	}
	return messages, nil
}

// Inbox lists every message userID sent or received.
func (s *MessageService) Inbox(ctx context.Context, userID uint) ([]model.Message, error) {
	messages, err := s.messages.ListFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}
