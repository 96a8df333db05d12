package config

type Observability struct {
	ProbeListenAddress  string `env:"PROBE_LISTEN_ADDR" envDefault:":8081"`
	MetricListenAddress string `env:"METRICS_LISTEN_ADDR" envDefault:":9090"`
	LogLevel            string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn warning error"`
	LogFormat           string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
}
