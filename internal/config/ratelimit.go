package config

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type RateLimit struct {
	Window  Milliseconds `env:"RATE_LIMIT_WINDOW_MS" envDefault:"60000" validate:"gt=0"`
	Max     int          `env:"RATE_LIMIT_MAX" envDefault:"8" validate:"gt=0"`
	Backend string       `env:"RATE_LIMIT_BACKEND" envDefault:"memory" validate:"oneof=memory redis"`
}
