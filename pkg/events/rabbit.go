package events

import (
	"context"
	"encoding/json"
	"fmt"
)

type rabbitClient interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// RabbitPublisher routes each event by its type, so consumers can bind
// to "job_opening.*" or to a single event type.
type RabbitPublisher struct {
	client rabbitClient
}

func NewRabbitPublisher(client rabbitClient) *RabbitPublisher {
	return &RabbitPublisher{client: client}
}

func (p *RabbitPublisher) Publish(ctx context.Context, evt Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	return p.client.Publish(ctx, evt.Type, body)
}
