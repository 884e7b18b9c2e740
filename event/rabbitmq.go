package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"skillswap-service/config"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type EventChannelData struct {
	ID     string
	Action string
	Data   []byte
}

type RabbitMQSubscribeListener struct {
	Queue   string
	Channel chan EventChannelData
}

const RabbitMQActionHeader string = "x-action"

const publishTimeout = 5 * time.Second

// RabbitMQ owns one connection and one channel. Publishing is serialized
// because an amqp channel must not be used from several goroutines at once.
type RabbitMQ struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	log        *slog.Logger
	trace      bool

	mu sync.Mutex
}

func RabbitMQURL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		config.Config("RABBITMQ_USER"),
		config.Config("RABBITMQ_PASSWORD"),
		config.Config("RABBITMQ_HOST"),
		config.Config("RABBITMQ_PORT"),
	)
}

// RabbitMQConnect dials url and declares queues. With trace set every event
// in and out is logged at debug level.
func RabbitMQConnect(url string, queues []string, log *slog.Logger, trace bool) (*RabbitMQ, error) {
	connection, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	log.Info("connection opened to RabbitMQ server")

	channel, err := connection.Channel()
	if err != nil {
		_ = connection.Close()
		return nil, fmt.Errorf("failed to open a RabbitMQ channel: %w", err)
	}

	for _, name := range queues {
		if _, err := channel.QueueDeclare(
			name,  // name
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		); err != nil {
			_ = connection.Close()
			return nil, fmt.Errorf("failed to declare RabbitMQ queue %s: %w", name, err)
		}
		log.Info("declared RabbitMQ queue", "queue", name)
	}

	return &RabbitMQ{
		connection: connection,
		channel:    channel,
		log:        log,
		trace:      trace,
	}, nil
}

// Subscribe forwards every message of each listener's queue to its channel
// until the connection closes.
func (r *RabbitMQ) Subscribe(listeners []RabbitMQSubscribeListener) error {
	for _, listener := range listeners {
		msgs, err := r.channel.Consume(
			listener.Queue, // queue
			"",             // consumer
			false,          // auto-ack
			false,          // exclusive
			false,          // no-local
			false,          // no-wait
			nil,            // args
		)
		if err != nil {
			return fmt.Errorf("failed to register a consumer on %s: %w", listener.Queue, err)
		}
		r.log.Info("subscribed to RabbitMQ queue", "queue", listener.Queue)

		go r.forward(listener, msgs)
	}
	return nil
}

func (r *RabbitMQ) forward(listener RabbitMQSubscribeListener, msgs <-chan amqp.Delivery) {
	for msg := range msgs {
		action, _ := msg.Headers[RabbitMQActionHeader].(string)
		if r.trace {
			r.log.Debug("event in", "queue", listener.Queue, "action", action, "id", msg.MessageId)
		}

		if err := msg.Ack(false); err != nil {
			r.log.Warn("failed to ack event", "queue", listener.Queue, "error", err)
		}

		listener.Channel <- EventChannelData{
			ID:     msg.MessageId,
			Action: action,
			Data:   msg.Body,
		}
	}
	close(listener.Channel)
}

// Emit publishes data to queue under action.
func (r *RabbitMQ) Emit(ctx context.Context, queue string, action string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	id := uuid.NewString()

	r.mu.Lock()
	err := r.channel.PublishWithContext(
		ctx,
		"",    // exchange
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    id,
			Timestamp:    time.Now(),
			Headers: amqp.Table{
				RabbitMQActionHeader: action,
			},
			Body: data,
		},
	)
	r.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish %s to %s: %w", action, queue, err)
	}

	if r.trace {
		r.log.Debug("event out", "queue", queue, "action", action, "id", id)
	}
	return nil
}

func (r *RabbitMQ) Close() error {
	return errors.Join(r.channel.Close(), r.connection.Close())
}
