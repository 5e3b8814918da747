package kafka

import (
	"context"
	"fmt"
	"sort"

	"github.com/segmentio/kafka-go"
)

// Publish writes one message and blocks until the writer reports the
// configured number of acks. Headers typically carry trace context.
func (p *Producer) Publish(ctx context.Context, key string, value []byte, headers map[string]string) error {
	msg := kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Headers: toHeaders(headers),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("error in publishing msg into kafka", err, map[string]interface{}{
			"topic": p.cfg.Topic,
			"key":   key,
		})
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}
	return nil
}

// Close flushes pending writes and releases the writer's connections.
func (p *Producer) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.logger.Info("closing kafka producer...", nil, nil)
		err = p.writer.Close()
	})
	return err
}

func toHeaders(headers map[string]string) []kafka.Header {
	if len(headers) == 0 {
		return nil
	}
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]kafka.Header, 0, len(keys))
	for _, k := range keys {
		out = append(out, kafka.Header{Key: k, Value: []byte(headers[k])})
	}
	return out
}
