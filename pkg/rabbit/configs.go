package rabbit

// Config holds the connection and exchange settings of the publisher.
type Config struct {
	Connection Connection `koanf:"connection"`
	Channel    Channel    `koanf:"channel"`
}

type Connection struct {
	Host           string `koanf:"host"`
	Port           uint   `koanf:"port"`
	User           string `koanf:"user"`
	Password       string `koanf:"password"`
	IsSSLEnabled   bool   `koanf:"is_ssl_enabled"`
	UseCert        bool   `koanf:"use_cert"`
	CACertPath     string `koanf:"ca_cert_path"`
	ClientCertPath string `koanf:"client_cert_path"`
	ClientKeyPath  string `koanf:"client_key_path"`
	ServerName     string `koanf:"server_name"`
}

type Channel struct {
	ExchangeName string `koanf:"exchange_name"`
	ExchangeType string `koanf:"exchange_type" validate:"omitempty,oneof=direct topic fanout headers"`
	ContentType  string `koanf:"content_type"`
}

func DefaultConfig() Config {
	return Config{
		Connection: Connection{
			Host:     "localhost",
			Port:     5672,
			User:     "guest",
			Password: "guest",
		},
		Channel: Channel{
			ExchangeName: "job-openings",
			ExchangeType: "topic",
			ContentType:  "application/json",
		},
	}
}
