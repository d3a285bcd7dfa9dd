package service

import (
	"context"
	"time"
)

// Domain event types.
const (
	EventAccountRegistered = "account.registered"
	EventAccountDeleted    = "account.deleted"
	EventAccountFollowed   = "account.followed"
	EventPostCreated       = "post.created"
)

// DomainEvent is published after a state change has been committed.
type DomainEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	AccountID  string    `json:"account_id"`
	SubjectID  string    `json:"subject_id,omitempty"` // Followed account or created post
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// Publish sends one event.
	Publish(ctx context.Context, event *DomainEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
