// Package rabbit publishes messages to RabbitMQ.
//
// The client dials the broker, opens a channel in confirm mode and declares a
// durable exchange. Publish blocks until the broker acknowledges the message,
// so a nil error means the message reached the exchange. A background loop
// re-establishes the connection and channel when the broker goes away.
//
// Basic Usage:
//
//	client, err := rabbit.NewClient(rabbit.DefaultConfig(), log)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	err = client.Publish(ctx, "job_opening.created", []byte(`{"jobId":"abc"}`))
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() rabbit.Config { return cfg.Rabbit }),
//		rabbit.FXModule,
//	)
//
// TLS is enabled with Connection.IsSSLEnabled. Setting UseCert as well loads a
// client certificate and a custom CA from the configured paths.
package rabbit
