// Package rabbitmq publishes and consumes favorite events over AMQP.
package rabbitmq

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	amqp "github.com/streadway/amqp"
)

// FavoriteQueue is the durable queue favorite events are routed to.
const FavoriteQueue = "favorite_events"

// Event types.
const (
	FavoriteAdded   = "favorite.added"
	FavoriteRemoved = "favorite.removed"
)

// FavoriteEvent is the JSON body of every message on FavoriteQueue.
type FavoriteEvent struct {
	Type       string    `json:"type"`
	FavoriteID uint      `json:"favorite_id"`
	UserID     uint      `json:"user_id"`
	Target     string    `json:"target"`
	TargetID   uint      `json:"target_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares FavoriteQueue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info().Str("queue", FavoriteQueue).Msg("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

func declareQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		FavoriteQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", FavoriteQueue, err)
	}
	return nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// PublishFavoriteEvent publishes ev as a persistent JSON message.
func (c *Client) PublishFavoriteEvent(ev FavoriteEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal favorite event: %w", err)
	}

	err = c.channel.Publish(
		"",            // default exchange
		FavoriteQueue, // routing key
		false,         // mandatory
		false,         // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         ev.Type,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    ev.OccurredAt,
		})
	if err != nil {
		return fmt.Errorf("failed to publish favorite event: %w", err)
	}

	log.Debug().Str("type", ev.Type).Uint("favorite_id", ev.FavoriteID).Msg("Published favorite event")
	return nil
}

// ConsumeFavoriteEvents delivers decoded events to handler until the
// channel closes. Messages that fail to decode are dropped; handler errors
// requeue the message.
func (c *Client) ConsumeFavoriteEvents(handler func(FavoriteEvent) error) (<-chan struct{}, error) {
	if c.channel == nil {
		return nil, fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		FavoriteQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register consumer: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			handleDelivery(msg, handler)
		}
	}()

	return done, nil
}

func handleDelivery(msg amqp.Delivery, handler func(FavoriteEvent) error) {
	var ev FavoriteEvent
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		log.Error().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("Dropping undecodable favorite event")
		if nackErr := msg.Nack(false, false); nackErr != nil {
			log.Error().Err(nackErr).Uint64("delivery_tag", msg.DeliveryTag).Msg("Error nacking message")
		}
		return
	}

	if err := handler(ev); err != nil {
		log.Error().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("Error processing favorite event")
		if nackErr := msg.Nack(false, true); nackErr != nil {
			log.Error().Err(nackErr).Uint64("delivery_tag", msg.DeliveryTag).Msg("Error nacking message")
		}
		return
	}

	if ackErr := msg.Ack(false); ackErr != nil {
		log.Error().Err(ackErr).Uint64("delivery_tag", msg.DeliveryTag).Msg("Error acking message")
	}
}
