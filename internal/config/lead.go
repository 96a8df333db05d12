package config

type Lead struct {
	AllowedOriginsRaw string       `env:"ALLOWED_ORIGINS"`
	MinFillTime       Milliseconds `env:"MIN_FORM_FILL_MS" envDefault:"1500"`
	MaxFillTime       Milliseconds `env:"MAX_FORM_FILL_MS" envDefault:"7200000"`
	MaxBodyBytes      int64        `env:"MAX_BODY_BYTES" envDefault:"4096" validate:"gt=0"`
}

// AllowedOrigins пустой список допустим: сервис стартует и отвечает 500
// на каждый запрос, пока список не задан.
func (l Lead) AllowedOrigins() []string {
	return splitList(l.AllowedOriginsRaw)
}
