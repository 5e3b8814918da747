package events

import (
	"context"
	"encoding/json"
	"fmt"
)

type kafkaProducer interface {
	Publish(ctx context.Context, key string, value []byte, headers map[string]string) error
}

type carrierSource interface {
	GetCarrier(ctx context.Context) map[string]string
}

// KafkaPublisher keys messages by job id so every event of one opening
// lands on the same partition. Trace context travels in the headers.
type KafkaPublisher struct {
	producer kafkaProducer
	carrier  carrierSource
}

func NewKafkaPublisher(producer kafkaProducer, carrier carrierSource) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, carrier: carrier}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	headers := map[string]string{"event-type": evt.Type}
	if p.carrier != nil {
		for k, v := range p.carrier.GetCarrier(ctx) {
			headers[k] = v
		}
	}
	return p.producer.Publish(ctx, evt.JobID, body, headers)
}
