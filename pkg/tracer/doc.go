// Package tracer wraps the OpenTelemetry SDK for the job openings service.
//
// NewClient installs a global TracerProvider and the W3C trace-context and
// baggage propagators. With EnableExport set, spans are batched to an
// OTLP/HTTP collector; otherwise they stay in-process, which keeps trace ids
// available for log correlation and for headers on published events.
//
// Pipelines open one span per step:
//
//	ctx, span := t.StartSpan(ctx, "pipeline.index")
//	defer span.End()
//	t.SetAttributes(span, map[string]interface{}{"source_hash": hash})
//	if err != nil {
//		t.RecordErrorOnSpan(span, err)
//	}
//
// GetCarrier and SetCarrierOnContext move the span context in and out of
// string maps such as Kafka headers.
//
// All span helpers accept a nil *Tracer, in which case they do nothing.
package tracer
