package shared

import "context"

// EventHandler processes a domain event
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventType() string
}

// EventBus publishes domain events to registered handlers
type EventBus interface {
	Publish(ctx context.Context, events ...DomainEvent) error
	Subscribe(handler EventHandler)
}
