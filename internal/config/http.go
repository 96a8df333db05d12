package config

import "time"

type HTTP struct {
	ListenAddress   string        `env:"HTTP_LISTEN_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// TrustProxy клиентский IP берётся из X-Forwarded-For / X-Real-IP.
	TrustProxy     bool `env:"HTTP_TRUST_PROXY" envDefault:"true"`
	LogFieldMaxLen int  `env:"HTTP_LOG_FIELD_MAX_LEN" envDefault:"2048" validate:"gte=0"`
}
