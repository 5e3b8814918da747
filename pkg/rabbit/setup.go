package rabbit

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger defines the interface for logging operations in the rabbit package.
// This interface allows the package to use any logging implementation that
// conforms to these methods.
//
//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=rabbit
type Logger interface {
	// Info logs informational messages, optionally with error and contextual fields
	Info(msg string, err error, fields ...map[string]interface{})

	// Debug logs debug-level messages, optionally with error and contextual fields
	Debug(msg string, err error, fields ...map[string]interface{})

	// Warn logs warning messages, optionally with error and contextual fields
	Warn(msg string, err error, fields ...map[string]interface{})

	// Error logs error messages with the associated error and optional contextual fields
	Error(msg string, err error, fields ...map[string]interface{})

	// Fatal logs critical errors that should terminate the application
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Rabbit publishes messages to a single RabbitMQ exchange with publisher
// confirms and reconnects automatically when the connection drops.
type Rabbit struct {
	// cfg stores the configuration for this RabbitMQ client
	cfg Config

	// Channel is the confirm-mode AMQP channel used for publishing.
	Channel *amqp.Channel

	// conn is the underlying AMQP connection to the RabbitMQ server
	conn *amqp.Connection

	// logger is used for logging operations and errors
	logger Logger

	// mu protects concurrent access to connection and channel
	mu sync.RWMutex

	// shutdownSignal is closed when the client is being shut down
	shutdownSignal chan struct{}
	closeOnce      sync.Once
}

// NewClient connects to RabbitMQ, opens a confirm-mode channel and declares
// the configured exchange.
//
// Example:
//
//	client, err := rabbit.NewClient(config, log)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
func NewClient(config Config, logger Logger) (*Rabbit, error) {
	con, err := newConnection(config, logger)
	if err != nil {
		return nil, err
	}

	ch, err := connectToChannel(con, config, logger)
	if err != nil {
		_ = con.Close()
		return nil, err
	}

	return &Rabbit{
		cfg:            config,
		conn:           con,
		Channel:        ch,
		logger:         logger,
		shutdownSignal: make(chan struct{}),
	}, nil
}

// connectToChannel creates a channel in confirm mode and declares the
// durable exchange events are published to.
func connectToChannel(rb *amqp.Connection, cfg Config, logger Logger) (*amqp.Channel, error) {
	ch, err := rb.Channel()
	if err != nil {
		logger.Error("failed to create channel", err, nil)
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	if err = ch.Confirm(false); err != nil {
		logger.Error("failed to enable publisher confirms", err, nil)
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	exchangeType := cfg.Channel.ExchangeType
	if exchangeType == "" {
		exchangeType = amqp.ExchangeTopic
	}

	err = ch.ExchangeDeclare(
		cfg.Channel.ExchangeName,
		exchangeType,
		true,  // Durable
		false, // AutoDelete
		false, // Internal
		false, // NoWait
		nil,   // Arguments
	)
	if err != nil {
		logger.Error("failed to declare exchange", err, map[string]interface{}{
			"exchange": cfg.Channel.ExchangeName,
		})
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return ch, nil
}

// RetryConnection watches the connection and re-establishes it, along with
// the channel and exchange, whenever it closes. It returns when Close is called.
func (rb *Rabbit) RetryConnection(logger Logger, cfg Config) {
outerLoop:
	for {
		errChan := make(chan *amqp.Error, 1)
		rb.mu.RLock()
		rb.conn.NotifyClose(errChan)
		rb.mu.RUnlock()

		select {
		case <-rb.shutdownSignal:
			logger.Info("Stopping RetryConnection loop due to shutdown signal", nil, nil)
			return

		case err := <-errChan:
			logger.Warn("RabbitMQ connection closed, retrying...", err, nil)
		reconnectLoop:
			for {
				select {
				case <-rb.shutdownSignal:
					logger.Info("Stopping RetryConnection loop due to shutdown signal inside reconnect", nil, nil)
					return
				default:
					newConn, err := newConnection(cfg, logger)
					if err != nil {
						logger.Error("Reconnection failed", err, nil)
						time.Sleep(time.Second)
						continue reconnectLoop
					}

					rb.mu.Lock()
					rb.conn = newConn
					if rb.Channel != nil {
						_ = rb.Channel.Close()
					}
					rb.Channel, err = connectToChannel(newConn, cfg, logger)
					rb.mu.Unlock()

					if err != nil {
						logger.Error("Failed to reopen channel, retrying...", err, nil)
						continue reconnectLoop
					}

					logger.Info("Reconnected to RabbitMQ", nil, nil)
					continue outerLoop
				}
			}
		}
	}
}

// newConnection dials RabbitMQ. Three modes are supported: TLS with a client
// certificate, TLS with server authentication only, and plain AMQP. All use
// a 2-second heartbeat to detect disconnections quickly.
func newConnection(cfg Config, logger Logger) (*amqp.Connection, error) {
	logger.Info("Connecting to Rabbit", nil, nil)

	scheme := "amqp"
	if cfg.Connection.IsSSLEnabled {
		scheme = "amqps"
	}
	hostURL := fmt.Sprintf("%s://%v:%v@%v:%v", scheme, cfg.Connection.User, cfg.Connection.Password, cfg.Connection.Host, cfg.Connection.Port)
	safeAddr := fmt.Sprintf("%s://%v:%v", scheme, cfg.Connection.Host, cfg.Connection.Port)

	amqpCfg := amqp.Config{Heartbeat: 2 * time.Second}
	if cfg.Connection.IsSSLEnabled && cfg.Connection.UseCert {
		tlsConfig, err := clientTLSConfig(cfg.Connection)
		if err != nil {
			logger.Error("failed to load TLS material", err, nil)
			return nil, err
		}
		amqpCfg.TLSClientConfig = tlsConfig
	}

	conn, err := amqp.DialConfig(hostURL, amqpCfg)
	if err != nil {
		logger.Error("error in connecting to rabbit", err, map[string]interface{}{
			"rabbit_addr": safeAddr,
		})
		return nil, fmt.Errorf("failed to connect to Rabbit: %w", err)
	}

	logger.Info("Connected to Rabbit", nil, map[string]interface{}{
		"rabbit_addr": safeAddr,
	})
	return conn, nil
}

func clientTLSConfig(c Connection) (*tls.Config, error) {
	caCert, err := os.ReadFile(c.CACertPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate: %w", err)
	}
	caCertPool := x509.NewCertPool()
	caCertPool.AppendCertsFromPEM(caCert)

	cert, err := tls.LoadX509KeyPair(c.ClientCertPath, c.ClientKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load client cert/key: %w", err)
	}

	return &tls.Config{
		RootCAs:      caCertPool,
		Certificates: []tls.Certificate{cert},
		ServerName:   c.ServerName,
	}, nil
}
