package ports

import (
	"context"

	"github.com/vetclinic/user-service/internal/core/domain"
)

// UserNotifier receives best-effort user lifecycle notifications. It must not
// block the caller on delivery and reports no error.
type UserNotifier interface {
	NotifyUserCreated(ctx context.Context, event domain.UserCreatedEvent)
}

// EventPublisher delivers a serialised event to the message broker.
type EventPublisher interface {
	PublishUserCreated(ctx context.Context, event domain.UserCreatedEvent) error
}
