// Package events publishes job opening lifecycle events.
//
// Two events exist: job_opening.created after a document has been stored
// and indexed, and job_opening.deleted after its vectors and stored copy are
// gone. The body is the JSON form of Event.
//
// Backends:
//   - kafka: keyed by job id, trace context in message headers
//   - rabbit: routing key is the event type, publisher confirms enabled
//   - noop: events are dropped
//
// Emitter sits in front of the selected Publisher. Emit queues the event and
// returns at once; a background worker publishes in order and swallows
// failures after logging them. Close, run on fx stop, drains the queue.
package events
