package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/metrics"
)

type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Emitter publishes events on behalf of request handlers. Emit only queues
// the event; a single worker publishes queued events in order, off the
// request path. Delivery failures are logged and counted but never
// returned: an event that cannot be sent must not fail the write that
// caused it.
type Emitter struct {
	publisher Publisher
	metrics   *metrics.Metrics
	logger    Logger
	timeout   time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan pending
	done   chan struct{}
}

type pending struct {
	ctx context.Context
	evt Event
}

const (
	defaultPublishTimeout = 5 * time.Second
	defaultQueueSize      = 256
)

var (
	// ErrQueueFull is recorded when Emit finds the publish queue full.
	ErrQueueFull = errors.New("event queue full")

	// ErrEmitterClosed is recorded when Emit is called after Close.
	ErrEmitterClosed = errors.New("event emitter closed")
)

// NewEmitter starts the publishing worker. Call Close to drain it.
func NewEmitter(publisher Publisher, m *metrics.Metrics, logger Logger) *Emitter {
	if publisher == nil {
		publisher = Noop{}
	}
	e := &Emitter{
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		timeout:   defaultPublishTimeout,
		queue:     make(chan pending, defaultQueueSize),
		done:      make(chan struct{}),
	}
	go e.run()
	return e
}

// Emit stamps evt with the current time when unset and queues it without
// blocking. The publish keeps the trace and values of ctx; request
// cancellation does not abort it. Events that cannot be queued are dropped.
func (e *Emitter) Emit(ctx context.Context, evt Event) {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		e.drop(evt, ErrEmitterClosed)
		return
	}
	select {
	case e.queue <- pending{ctx: context.WithoutCancel(ctx), evt: evt}:
	default:
		e.drop(evt, ErrQueueFull)
	}
}

// Close stops accepting events and waits until the queued ones are
// published or ctx ends.
func (e *Emitter) Close(ctx context.Context) error {
	e.mu.Lock()
	if !e.closed {
		e.closed = true
		close(e.queue)
	}
	e.mu.Unlock()

	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Emitter) run() {
	defer close(e.done)
	for p := range e.queue {
		e.publish(p.ctx, p.evt)
	}
}

func (e *Emitter) publish(ctx context.Context, evt Event) {
	pubCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	err := e.publisher.Publish(pubCtx, evt)
	e.metrics.ObserveEvent(evt.Type, err)
	if err != nil {
		e.logger.Warn("failed to publish event", err, map[string]interface{}{
			"event":  evt.Type,
			"job_id": evt.JobID,
		})
		return
	}
	e.logger.Debug("event published", nil, map[string]interface{}{
		"event":  evt.Type,
		"job_id": evt.JobID,
	})
}

func (e *Emitter) drop(evt Event, reason error) {
	e.metrics.ObserveEvent(evt.Type, reason)
	e.logger.Warn("event dropped", reason, map[string]interface{}{
		"event":  evt.Type,
		"job_id": evt.JobID,
	})
}
