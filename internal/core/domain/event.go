package domain

import "time"

// EventUserCreated is the type tag of UserCreatedEvent messages.
const EventUserCreated = "user.created"

// UserCreatedEvent is published after a user row has been committed.
type UserCreatedEvent struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type"`
	UserID     uint      `json:"userId"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullname"`
	Role       RoleName  `json:"role"`
	OccurredAt time.Time `json:"occurredAt"`
}
