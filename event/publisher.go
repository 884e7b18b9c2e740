package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skillswap-service/model"
)

const ActionNotificationCreated = "notification_created"

// Emitter publishes a raw event. *RabbitMQ satisfies it.
type Emitter interface {
	Emit(ctx context.Context, queue string, action string, data []byte) error
}

type NotificationCreated struct {
	ID      uint                   `json:"id"`
	UserID  uint                   `json:"user_id"`
	Message string                 `json:"message"`
	Type    model.NotificationType `json:"type"`
	Link    *string                `json:"link"`
	Created time.Time              `json:"created"`
}

// Publisher announces stored notifications on the event bus so other
// services can deliver them.
type Publisher struct {
	emitter Emitter
	queue   string
}

func NewPublisher(emitter Emitter, queue string) *Publisher {
	return &Publisher{emitter: emitter, queue: queue}
}

func (p *Publisher) Push(ctx context.Context, notification *model.Notification) error {
	data, err := json.Marshal(NotificationCreated{
		ID:      notification.ID,
		UserID:  notification.UserID,
		Message: notification.Message,
		Type:    notification.Type,
		Link:    notification.Link,
		Created: notification.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return p.emitter.Emit(ctx, p.queue, ActionNotificationCreated, data)
}
