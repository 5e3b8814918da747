// Package logger provides the structured logger used by every job-openings-rag component.
//
// It wraps Uber's zap with a small, fixed calling convention: every log call takes a
// message, an optional error and any number of field maps.
//
// Basic Usage:
//
//	log := logger.NewLoggerClient(logger.Config{Level: "info"})
//
//	log.Info("job opening indexed", nil, map[string]interface{}{
//		"job_id": jobID,
//		"chunks": 4,
//	})
//
//	log.Error("embedding request failed", err, nil)
//
// Components never import *Logger directly. Each package declares its own
// Logger interface with the same method set, which *Logger satisfies, so tests
// can plug in a no-op or mock implementation.
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		// ... other modules
//	)
//
// Configuration:
//
//	JOBRAG_LOGGER_LEVEL=debug          # debug, info, warning, error
//	JOBRAG_LOGGER_SERVICE_NAME=jobrag  # value of the "service" field
//
// Thread Safety:
//
// All methods on Logger are safe for concurrent use by multiple goroutines.
package logger
