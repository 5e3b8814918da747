package events

import (
	"context"
	"time"
)

// Event types.
const (
	JobOpeningCreated = "job_opening.created"
	JobOpeningDeleted = "job_opening.deleted"
)

// Event is the message body published for a change to a job opening.
type Event struct {
	Type       string    `json:"type"`
	JobID      string    `json:"jobId"`
	Position   string    `json:"position,omitempty"`
	Chunks     int       `json:"chunks,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher delivers one event to a broker.
//
//go:generate mockgen -source=events.go -destination=mock_publisher.go -package=events
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
