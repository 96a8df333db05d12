// Package leadform клиентская часть формы заявки: маска телефона, метка
// начала заполнения, UTM-параметры страницы и отправка на сервис заявок.
package leadform

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"lead_relay/internal/domain/value"
	"lead_relay/pkg/logx"
	"lead_relay/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	maxQueryKeyLength   = 64
	maxQueryValueLength = 200
	defaultTimeout      = 15 * time.Second
)

type Form struct {
	endpoint   string
	origin     string
	success    string
	httpClient *http.Client
	now        func() time.Time
	editor     value.PhoneEditor

	mu        sync.Mutex
	startedAt time.Time
	query     rest.OrderedParams
}

type Option func(*Form)

func WithHTTPClient(c *http.Client) Option {
	return func(f *Form) {
		f.httpClient = c
	}
}

// WithOrigin заголовок Origin, который браузер ставит сам.
func WithOrigin(origin string) Option {
	return func(f *Form) {
		f.origin = origin
	}
}

func WithSuccessMessage(message string) Option {
	return func(f *Form) {
		if message != "" {
			f.success = message
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		f.now = now
	}
}

func New(endpoint string, opts ...Option) *Form {
	f := &Form{
		endpoint:   strings.TrimSpace(endpoint),
		success:    MessageSuccess,
		httpClient: &http.Client{Timeout: defaultTimeout},
		now:        time.Now,
		query:      rest.OrderedParams{},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Start отмечает момент открытия формы.
func (f *Form) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.startedAt = f.now()
}

func (f *Form) StartedAt() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.startedAt
}

// SetQuery разбирает query-строку страницы с сохранением порядка. Повторный
// ключ заменяет значение на месте первого.
func (f *Form) SetQuery(rawQuery string) {
	params := rest.OrderedParams{}
	index := make(map[string]int)

	for _, part := range strings.Split(strings.TrimPrefix(rawQuery, "?"), "&") {
		if part == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(part, "=")

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}

		val, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}

		key = value.TruncateRunes(strings.TrimSpace(key), maxQueryKeyLength)
		val = value.TruncateRunes(strings.TrimSpace(val), maxQueryValueLength)

		if key == "" || val == "" {
			continue
		}

		if i, ok := index[key]; ok {
			params[i].Value = val
			continue
		}

		index[key] = len(params)
		params = append(params, rest.Param{Key: key, Value: val})
	}

	f.mu.Lock()
	f.query = params
	f.mu.Unlock()
}

func (f *Form) Query() rest.OrderedParams {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append(rest.OrderedParams{}, f.query...)
}

func (f *Form) InputPhone(raw string, caret int) value.Edit {
	return f.editor.Input(raw, caret)
}

// BackspacePhone false: обычное удаление символа, маска не вмешивается.
func (f *Form) BackspacePhone(current string, start, end int) (value.Edit, bool) {
	return f.editor.Backspace(current, start, end)
}

func (f *Form) FocusPhone(current string) value.Edit {
	return f.editor.Focus(current)
}

func (f *Form) BlurPhone(current string) string {
	return f.editor.Blur(current)
}

// Submit проверяет поля так же, как форма на странице, и отправляет заявку.
// После успешной отправки метка начала ставится заново.
func (f *Form) Submit(ctx context.Context, name, phone, company string, privacy bool) Status {
	if f.endpoint == "" {
		return newStatus(KindNotConnected, MessageNotConnected)
	}

	name = strings.TrimSpace(name)
	phone = value.FormatPhone(strings.TrimSpace(phone))
	company = strings.TrimSpace(company)

	if name == "" || phone == "" {
		return newStatus(KindIncomplete, MessageIncomplete)
	}

	if len(value.NormalizePhoneDigits(phone)) != value.PhoneLength {
		return newStatus(KindInvalidPhone, MessageInvalidPhone)
	}

	if !privacy {
		return newStatus(KindNoConsent, MessageNoConsent)
	}

	startedAt := f.StartedAt()
	if startedAt.IsZero() {
		return newStatus(KindStale, MessageStale)
	}

	request := rest.LeadRequest{
		Name:        rest.LooseString(name),
		Phone:       rest.LooseString(phone),
		Company:     rest.LooseString(company),
		StartedAt:   rest.Timestamp(startedAt.UnixMilli()),
		QueryParams: f.Query(),
	}

	code, err := f.post(ctx, request)
	if err != nil {
		logger(ctx).Warn("lead not sent", logx.Error(err))

		return Status{Kind: KindFailed, Message: MessageFailed, HTTPStatus: code}
	}

	f.Start()

	return Status{Kind: KindSent, Message: f.success, HTTPStatus: code}
}

func (f *Form) post(ctx context.Context, request rest.LeadRequest) (int, error) {
	b, err := json.Marshal(request)
	if err != nil {
		return 0, fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(b))
	if err != nil {
		return 0, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if f.origin != "" {
		req.Header.Set("Origin", f.origin)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024)) //nolint:errcheck

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp.StatusCode, fmt.Errorf("bad response %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	logger(ctx).Debug("lead sent", slog.Int(logx.FieldResponseStatus, resp.StatusCode))

	return resp.StatusCode, nil
}
