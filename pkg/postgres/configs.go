package postgres

import "time"

// Config holds the connection and pool settings for a PostgreSQL database.
type Config struct {
	Connection        Connection        `koanf:"connection"`
	ConnectionDetails ConnectionDetails `koanf:"connection_details"`
}

type Connection struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DbName   string `koanf:"db_name"`
	SSLMode  string `koanf:"ssl_mode"`
}

type ConnectionDetails struct {
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// DefaultConfig returns settings for a local development database.
func DefaultConfig() Config {
	return Config{
		Connection: Connection{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			DbName:  "job_openings",
			SSLMode: "disable",
		},
		ConnectionDetails: ConnectionDetails{
			MaxOpenConns:    50,
			MaxIdleConns:    25,
			ConnMaxLifetime: time.Minute,
		},
	}
}

// dsn renders the connection string understood by the pgx driver.
func (c Config) dsn() string {
	return "host=" + c.Connection.Host +
		" port=" + c.Connection.Port +
		" user=" + c.Connection.User +
		" password=" + c.Connection.Password +
		" dbname=" + c.Connection.DbName +
		" sslmode=" + c.Connection.SSLMode
}
