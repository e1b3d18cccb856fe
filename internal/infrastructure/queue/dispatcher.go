package queue

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vetclinic/user-service/internal/api/metrics"
	"github.com/vetclinic/user-service/internal/core/domain"
	"github.com/vetclinic/user-service/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
)

// Dispatcher hands user-created events to a fixed set of workers that publish
// them. Callers never wait on the broker: when the buffer is full the event
// is dropped and logged.
type Dispatcher struct {
	events    chan domain.UserCreatedEvent
	workers   int
	publisher ports.EventPublisher
	log       zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers workers and a buffer of
// bufferSize pending events. Non-positive values fall back to the defaults.
func NewDispatcher(numWorkers, bufferSize int, publisher ports.EventPublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if bufferSize <= 0 {
		bufferSize = channelBuffer
	}
	return &Dispatcher{
		events:    make(chan domain.UserCreatedEvent, bufferSize),
		workers:   numWorkers,
		publisher: publisher,
		log:       log,
	}
}

// Start launches all worker goroutines. ctx bounds every publish; it is not
// the request context, which ends with the response.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.runWorker(ctx, i)
	}
}

// NotifyUserCreated enqueues event without blocking.
func (d *Dispatcher) NotifyUserCreated(_ context.Context, event domain.UserCreatedEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(event, "dispatcher stopped")
		return
	}

	select {
	case d.events <- event:
		metrics.NotificationQueueDepth.Set(float64(len(d.events)))
	default:
		d.drop(event, "notification buffer full")
	}
}

// Shutdown stops accepting events and waits for the workers to drain the
// buffer, or for ctx to expire.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.events)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) drop(event domain.UserCreatedEvent, reason string) {
	metrics.NotificationsTotal.WithLabelValues("dropped").Inc()
	d.log.Warn().
		Str("event_id", event.EventID).
		Uint("user_id", event.UserID).
		Msg(reason)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	defer d.wg.Done()
	for event := range d.events {
		metrics.NotificationQueueDepth.Set(float64(len(d.events)))

		if err := d.publisher.PublishUserCreated(ctx, event); err != nil {
			metrics.NotificationsTotal.WithLabelValues("failed").Inc()
			d.log.Warn().Err(err).
				Str("event_id", event.EventID).
				Uint("user_id", event.UserID).
				Int("worker_id", id).
				Msg("user notification failed")
			continue
		}

		metrics.NotificationsTotal.WithLabelValues("published").Inc()
		d.log.Debug().
			Str("event_id", event.EventID).
			Uint("user_id", event.UserID).
			Int("worker_id", id).
			Msg("user notification published")
	}
}
