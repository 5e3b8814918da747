package rabbit

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrNotConfirmed is returned when the broker nacks a published message.
var ErrNotConfirmed = errors.New("rabbit: message not confirmed by broker")

// Publish sends body to the configured exchange under routingKey and waits
// for the broker to confirm it.
func (rb *Rabbit) Publish(ctx context.Context, routingKey string, body []byte) error {
	if err := ctx.Err(); err != nil {
		rb.logger.Error("context error for publishing msg into rabbit", err, nil)
		return err
	}

	rb.mu.RLock()
	confirm, err := rb.Channel.PublishWithDeferredConfirmWithContext(ctx,
		rb.cfg.Channel.ExchangeName,
		routingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  rb.cfg.Channel.ContentType,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	rb.mu.RUnlock()
	if err != nil {
		rb.logger.Error("error in publishing msg into rabbit", err, map[string]interface{}{
			"routing_key": routingKey,
		})
		return fmt.Errorf("failed to publish: %w", err)
	}

	ok, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("failed waiting for confirm: %w", err)
	}
	if !ok {
		rb.logger.Warn("rabbit nacked message", nil, map[string]interface{}{
			"routing_key": routingKey,
		})
		return ErrNotConfirmed
	}
	return nil
}

// Close stops the reconnect loop and closes the channel and connection.
// It is safe to call more than once.
func (rb *Rabbit) Close() error {
	var closeErr error
	rb.closeOnce.Do(func() {
		close(rb.shutdownSignal)

		rb.mu.Lock()
		defer rb.mu.Unlock()

		rb.logger.Info("closing rabbit channel...", nil, nil)
		if rb.Channel != nil {
			if err := rb.Channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
				rb.logger.Error("error in closing rabbit channel", err, nil)
				closeErr = err
			}
		}
		if rb.conn != nil && !rb.conn.IsClosed() {
			if err := rb.conn.Close(); err != nil {
				rb.logger.Error("error in closing rabbit connection", err, nil)
				closeErr = errors.Join(closeErr, err)
			}
		}
	})
	return closeErr
}
