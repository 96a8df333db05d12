package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip

type Config struct {
	HTTP          HTTP
	Lead          Lead
	RateLimit     RateLimit
	Redis         Redis
	Bot           Bot
	Observability Observability
}

// Load читает .env (если есть) и переменные окружения.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// LoadFrom читает конфигурацию только из переданных переменных.
func LoadFrom(environment map[string]string) (Config, error) {
	var config Config

	if err := env.ParseWithOptions(&config, env.Options{Environment: environment}); err != nil {
		return Config{}, fmt.Errorf("env.ParseWithOptions: %w", err)
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate.Struct: %w", err)
	}

	if c.RateLimit.Backend == BackendRedis && c.Redis.Address == "" {
		return fmt.Errorf("RATE_LIMIT_BACKEND=redis requires REDIS_ADDR")
	}

	if c.Lead.MinFillTime.Duration() > c.Lead.MaxFillTime.Duration() {
		return fmt.Errorf("MIN_FORM_FILL_MS %s exceeds MAX_FORM_FILL_MS %s",
			c.Lead.MinFillTime.Duration(), c.Lead.MaxFillTime.Duration())
	}

	return nil
}

// splitList разбирает список через запятую, пропуская пустые элементы.
func splitList(s string) []string {
	return lo.Compact(lo.Map(strings.Split(s, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
}
