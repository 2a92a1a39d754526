package application

import (
	"context"
	"time"
)

// Clock supplies timestamps for entity mutations.
type Clock interface {
	Now() time.Time
}

// IDGenerator issues opaque unique user ids.
type IDGenerator interface {
	NewID() string
}

// UserRegistered is emitted once a new user has been committed.
type UserRegistered struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher delivers domain events to interested parties outside the service.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegistered) error
}
