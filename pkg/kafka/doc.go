// Package kafka provides a small synchronous producer on top of
// segmentio/kafka-go.
//
// A Producer writes to one topic, balancing across partitions with
// LeastBytes. TLS and SASL (PLAIN, SCRAM-SHA-256, SCRAM-SHA-512) are
// configured through Config. Publish accepts string headers so callers can
// attach trace context taken from tracer.GetCarrier.
//
// Basic Usage:
//
//	producer, err := kafka.NewProducer(kafka.Config{
//		Brokers: []string{"localhost:9092"},
//		Topic:   "job-openings",
//	}, log)
//	if err != nil {
//		return err
//	}
//	defer producer.Close()
//
//	err = producer.Publish(ctx, jobID, payload, tracer.GetCarrier(ctx))
package kafka
