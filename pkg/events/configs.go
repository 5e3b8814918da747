package events

const (
	BackendNoop   = "noop"
	BackendKafka  = "kafka"
	BackendRabbit = "rabbit"
)

// Config selects where domain events go.
type Config struct {
	Backend string `koanf:"backend" validate:"oneof=noop kafka rabbit"`
}

func DefaultConfig() Config {
	return Config{Backend: BackendNoop}
}
