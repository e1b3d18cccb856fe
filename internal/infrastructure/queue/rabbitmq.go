package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/vetclinic/user-service/internal/api/metrics"
	"github.com/vetclinic/user-service/internal/core/domain"
)

const (
	defaultQueue   = "user_registered"
	publishTimeout = 5 * time.Second
)

var errChannelClosed = errors.New("rabbitmq channel not available")

// Config captures the settings for the RabbitMQ publisher.
type Config struct {
	URL     string
	Queue   string
	Retries int
	Delay   time.Duration
}

// Publisher sends user events to a durable queue on the default exchange.
type Publisher struct {
	queue string
	conn  *amqp.Connection
	ch    *amqp.Channel
	mu    sync.Mutex
	log   zerolog.Logger
}

// NewPublisher dials the broker, retrying cfg.Retries times, and declares the
// durable queue.
func NewPublisher(ctx context.Context, cfg Config, log zerolog.Logger) (*Publisher, error) {
	if cfg.Queue == "" {
		cfg.Queue = defaultQueue
	}
	attempts := cfg.Retries
	if attempts < 1 {
		attempts = 1
	}

	p := &Publisher{queue: cfg.Queue, log: log}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = p.connect(cfg.URL); lastErr == nil {
			log.Info().Str("queue", cfg.Queue).Int("attempt", attempt).Msg("rabbitmq connected")
			return p, nil
		}

		log.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Msg("rabbitmq connection failed")

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.Delay):
		}
	}
	return nil, fmt.Errorf("rabbitmq connect after %d attempts: %w", attempts, lastErr)
}

func (p *Publisher) connect(url string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	p.mu.Lock()
	p.conn = conn
	p.ch = ch
	p.mu.Unlock()
	return nil
}

// PublishUserCreated serialises event as JSON and publishes it persistently.
func (p *Publisher) PublishUserCreated(ctx context.Context, event domain.UserCreatedEvent) error {
	body, err := encodeEvent(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		return errChannelClosed
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	start := time.Now()
	err = p.ch.PublishWithContext(publishCtx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	metrics.NotificationPublishDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// Ping reports whether the broker connection is still open.
func (p *Publisher) Ping(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil || p.conn.IsClosed() {
		return errors.New("rabbitmq connection closed")
	}
	return nil
}

// Close shuts down the channel and connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}

func encodeEvent(event domain.UserCreatedEvent) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", event.Type, err)
	}
	return body, nil
}
