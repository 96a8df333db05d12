package config

import "time"

type Bot struct {
	Token   string        `env:"TELEGRAM_BOT_TOKEN" json:"-"`
	ChatID  string        `env:"TELEGRAM_CHAT_ID"`
	Timeout time.Duration `env:"TELEGRAM_TIMEOUT" envDefault:"10s"`
	APIURL  string        `env:"TELEGRAM_API_URL"`
}

// Configured без токена или чата заявки принимаются, но не отправляются.
func (b Bot) Configured() bool {
	return b.Token != "" && b.ChatID != ""
}
