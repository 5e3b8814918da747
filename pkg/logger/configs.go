package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

type Config struct {
	// 1. production -> INFO
	// 2. development -> DEBUG
	// else -> INFO
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warning error"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `koanf:"service_name"`
}
