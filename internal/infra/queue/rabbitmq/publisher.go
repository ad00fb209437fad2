package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

const (
	DefaultExchange = "bookings.escalations"
	ExchangeKind    = "topic"
	routingPrefix   = "booking.escalation."
)

// Logger is the logging interface of the publisher
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher sends escalations to a durable topic exchange
type Publisher struct {
	exchange string
	log      Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher dials url and declares the exchange
func NewPublisher(url, exchange string, log Logger) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	return &Publisher{exchange: exchange, log: log, conn: conn, channel: ch}, nil
}

// RoutingKey returns booking.escalation.<reason>
func RoutingKey(reason domain.EscalationReason) string {
	return routingPrefix + string(reason)
}

// Escalate publishes item as a persistent JSON message
func (p *Publisher) Escalate(ctx context.Context, item domain.ReconciliationItem) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	body, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal escalation: %w", err)
	}

	// channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		RoutingKey(item.Reason),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    item.PaymentIntentID + ":" + string(item.Reason),
			Timestamp:    item.CreatedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish escalation: %w", err)
	}

	p.log.Info("RabbitMQ: published %s for payment_intent=%s", RoutingKey(item.Reason), item.PaymentIntentID)
	return nil
}

// Close closes the channel and the connection
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
