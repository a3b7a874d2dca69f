package service

import (
	"context"
	"time"
)

// BusinessEventType names a change in the directory.
type BusinessEventType string

const (
	BusinessCreated BusinessEventType = "business.created"
	BusinessUpdated BusinessEventType = "business.updated"
	BusinessDeleted BusinessEventType = "business.deleted"
)

// BusinessEvent is published after every successful mutation.
type BusinessEvent struct {
	RequestID    string            `json:"request_id,omitempty"`
	ActorID      string            `json:"actor_id,omitempty"` // admin that made the change
	Type         BusinessEventType `json:"type"`
	BusinessID   string            `json:"business_id"`
	BusinessName string            `json:"business_name"`
	Category     string            `json:"category"`
	Verified     bool              `json:"verified"`
	OccurredAt   time.Time         `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishBusinessEvent publishes a directory change event
	PublishBusinessEvent(ctx context.Context, event *BusinessEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
