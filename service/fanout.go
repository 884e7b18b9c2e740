package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"skillswap-service/model"
)

const exchangesLink = "/exchanges"

// Delivery reports what a fan-out produced. Err joins every side effect that
// failed; it never fails the operation that triggered the fan-out.
type Delivery struct {
	Notification *model.Notification
	Message      *model.Message
	Err          error
}

// Fanout derives notifications (and the proposal message) from primary
// operations, persists them and pushes them to live channels.
type Fanout struct {
	sink     NotificationSink
	messages MessageRepository
	pushers  []Pusher
	log      *slog.Logger
}

func NewFanout(sink NotificationSink, messages MessageRepository, log *slog.Logger, pushers ...Pusher) *Fanout {
	return &Fanout{
		sink:     sink,
		messages: messages,
		pushers:  pushers,
		log:      loggerOrDiscard(log),
	}
}

// MessageSent notifies the recipient of a new direct message.
func (f *Fanout) MessageSent(ctx context.Context, sender *model.User, message *model.Message) Delivery {
	return f.notify(ctx,
		message.RecipientID,
		fmt.Sprintf("New message from %s", sender.Name),
		model.NotificationNewMessage,
		fmt.Sprintf("/messages/%d", sender.ID),
	)
}

// ProposalCreated appends the proposal to the pair's conversation and
// notifies the accepter.
func (f *Fanout) ProposalCreated(ctx context.Context, proposer *model.User, exchange *model.Exchange) Delivery {
	message := &model.Message{
		SenderID:         proposer.ID,
		RecipientID:      exchange.AccepterID,
		Content:          proposalContent(proposer.Name, exchange.ProposedTerms),
		RelatedOfferID:   exchange.OfferedSkillRefID,
		RelatedRequestID: exchange.RequestedSkillRefID,
	}

	var messageErr error
	if err := f.messages.Create(ctx, message); err != nil {
		f.log.Error("failed to append proposal message",
			"exchange_id", exchange.ID, "recipient_id", exchange.AccepterID, "error", err)
		messageErr = fmt.Errorf("proposal message: %w", err)
		message = nil
	}

	delivery := f.notify(ctx,
		exchange.AccepterID,
		fmt.Sprintf("New exchange proposal from %s", proposer.Name),
		model.NotificationProposal,
		exchangesLink,
	)
	delivery.Message = message
	delivery.Err = errors.Join(messageErr, delivery.Err)
	return delivery
}

// StatusUpdated notifies the participant who did not act.
func (f *Fanout) StatusUpdated(ctx context.Context, actor *model.User, exchange *model.Exchange) Delivery {
	return f.notify(ctx,
		exchange.Counterparty(actor.ID),
		fmt.Sprintf("Exchange with %s updated to: %s", actor.Name, strings.ToUpper(string(exchange.Status))),
		model.NotificationStatusUpdate,
		exchangesLink,
	)
}

func (f *Fanout) notify(ctx context.Context, userID uint, message string, kind model.NotificationType, link string) Delivery {
	notification, err := f.sink.Create(ctx, userID, message, kind, &link)
	if err != nil {
		f.log.Error("failed to create notification", "user_id", userID, "type", kind, "error", err)
		return Delivery{Err: fmt.Errorf("notification: %w", err)}
	}

	var pushErrs []error
	for _, pusher := range f.pushers {
		if err := pusher.Push(ctx, notification); err != nil {
			f.log.Warn("failed to push notification",
				"notification_id", notification.ID, "user_id", userID, "error", err)
			pushErrs = append(pushErrs, err)
		}
	}
	return Delivery{Notification: notification, Err: errors.Join(pushErrs...)}
}

func proposalContent(proposerName, terms string) string {
	return fmt.Sprintf("New Exchange Proposal from %s:\n\n\"%s\"\n\nView proposal in \"My Exchanges\".", proposerName, terms)
}
