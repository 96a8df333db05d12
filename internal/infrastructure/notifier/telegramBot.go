package notifier

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"lead_relay/internal/domain/entity"
	"lead_relay/pkg/contextx"
	"lead_relay/pkg/httpx"
	"lead_relay/pkg/logx"
)

const defaultTimeout = 10 * time.Second

type TelegramBot struct {
	bot    *telego.Bot
	chatID telego.ChatID
}

type options struct {
	apiURL         string
	timeout        time.Duration
	logFieldMaxLen int
}

type Option func(*options)

// WithAPIServer адрес Bot API, по умолчанию api.telegram.org.
func WithAPIServer(url string) Option {
	return func(o *options) {
		o.apiURL = strings.TrimRight(url, "/")
	}
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

func WithLogFieldMaxLen(n int) Option {
	return func(o *options) {
		o.logFieldMaxLen = n
	}
}

// NewTelegramBot chatID числовой (в том числе отрицательный id группы) или @username канала.
func NewTelegramBot(ctx context.Context, token, chatID string, opts ...Option) (*TelegramBot, error) {
	o := options{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	chat, err := ParseChatID(chatID)
	if err != nil {
		return nil, fmt.Errorf("parse chat id: %w", err)
	}

	httpClient := &http.Client{
		Timeout: o.timeout,
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(o.logFieldMaxLen),
		),
	}

	botOpts := []telego.BotOption{
		telego.WithHTTPClient(httpClient),
		telego.WithLogger(botLogger{log: contextx.LoggerFromContextOrDefault(ctx)}),
	}

	if o.apiURL != "" {
		botOpts = append(botOpts, telego.WithAPIServer(o.apiURL))
	}

	bot, err := telego.NewBot(token, botOpts...)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chat,
	}, nil
}

// ParseChatID разбирает TELEGRAM_CHAT_ID.
func ParseChatID(s string) (telego.ChatID, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "@") && len(s) > 1 {
		return tu.Username(s), nil
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return telego.ChatID{}, fmt.Errorf("chat id %q is neither a number nor @username", s)
	}

	return tu.ID(id), nil
}

// SendLead отправляет заявку в чат менеджеров.
func (b *TelegramBot) SendLead(ctx context.Context, lead entity.Lead) error {
	if err := b.SendText(ctx, LeadText(lead)); err != nil {
		return fmt.Errorf("send lead: %w", err)
	}

	logger(ctx).Debug("lead delivered to telegram")

	return nil
}

// SendText отправляет простое текстовое сообщение без превью ссылок.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(b.chatID, text)
	msg.LinkPreviewOptions = &telego.LinkPreviewOptions{IsDisabled: true}

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}
