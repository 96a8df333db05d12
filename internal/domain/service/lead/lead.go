package lead

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lead_relay/internal/domain"
	"lead_relay/internal/domain/entity"
	"lead_relay/internal/domain/value"
	"lead_relay/pkg/errcodes"
	"lead_relay/pkg/logx"
)

const (
	DefaultMinFillTime  = 1500 * time.Millisecond
	DefaultMaxFillTime  = 2 * time.Hour
	DefaultRelayTimeout = 10 * time.Second
)

// Relay доставляет принятую заявку менеджерам.
type Relay interface {
	SendLead(ctx context.Context, lead entity.Lead) error
}

// Recorder собирает статистику по исходам заявок.
type Recorder interface {
	ObserveOutcome(outcome string)
	ObserveRelay(d time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOutcome(string)              {}
func (nopRecorder) ObserveRelay(time.Duration, error) {}

type Service struct {
	relay        Relay
	recorder     Recorder
	minFill      time.Duration
	maxFill      time.Duration
	relayTimeout time.Duration
	now          func() time.Time
}

// NewService relay может быть nil, если отправка не настроена: тогда каждая
// прошедшая проверки заявка завершается ErrRelayNotConfigured.
func NewService(relay Relay) *Service {
	return &Service{
		relay:        relay,
		recorder:     nopRecorder{},
		minFill:      DefaultMinFillTime,
		maxFill:      DefaultMaxFillTime,
		relayTimeout: DefaultRelayTimeout,
		now:          time.Now,
	}
}

func (s *Service) WithTiming(minFill, maxFill time.Duration) *Service {
	s.minFill = minFill
	s.maxFill = maxFill
	return s
}

func (s *Service) WithRelayTimeout(d time.Duration) *Service {
	s.relayTimeout = d
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) WithMetrics(recorder Recorder) *Service {
	s.recorder = recorder
	return s
}

// Submit проверяет заявку и отправляет её. Заявки с заполненной ловушкой
// молча принимаются без отправки. Ошибки возвращаются как *domain.AppError.
func (s *Service) Submit(ctx context.Context, sub Submission) (Outcome, error) {
	outcome, err := s.submit(ctx, sub)
	if err != nil {
		code, ok := domain.GetCode(err)
		if !ok {
			code = errcodes.InternalServerError
		}

		s.recorder.ObserveOutcome(code.String())

		return "", err
	}

	s.recorder.ObserveOutcome(outcome.String())

	return outcome, nil
}

func (s *Service) submit(ctx context.Context, sub Submission) (Outcome, error) {
	now := s.now()

	if strings.TrimSpace(sub.Company) != "" {
		logger(ctx).Info("honeypot filled, lead dropped", slog.String(logx.FieldClientIP, sub.ClientIP))
		return OutcomeHoneypot, nil
	}

	if err := s.checkTiming(sub.StartedAt, now); err != nil {
		logger(ctx).Info("suspicious form timing", logx.Error(err), slog.String(logx.FieldClientIP, sub.ClientIP))
		return "", err
	}

	lead, err := s.buildLead(sub, now)
	if err != nil {
		logger(ctx).Info("lead rejected", logx.Error(err), slog.String(logx.FieldClientIP, sub.ClientIP))
		return "", err
	}

	if s.relay == nil {
		return "", domain.ErrRelayNotConfigured
	}

	if err := s.send(ctx, lead); err != nil {
		logger(ctx).Error("lead relay failed", logx.Error(err), slog.String(logx.FieldClientIP, sub.ClientIP))
		return "", domain.ErrRelayFailed.Wrap(err)
	}

	logger(ctx).Info("lead relayed",
		slog.String(logx.FieldClientIP, sub.ClientIP),
		slog.Int("query-params", len(lead.QueryParams)),
		slog.Duration("fill-time", lead.FillDuration()),
	)

	return OutcomeRelayed, nil
}

func (s *Service) checkTiming(startedAt, now time.Time) error {
	if startedAt.IsZero() {
		return domain.ErrInvalidFormTiming.Wrap(fmt.Errorf("startedAt is missing"))
	}

	elapsed := now.Sub(startedAt)
	if elapsed < s.minFill || elapsed > s.maxFill {
		return domain.ErrInvalidFormTiming.Wrap(
			fmt.Errorf("filled in %s, allowed %s..%s", elapsed, s.minFill, s.maxFill),
		)
	}

	return nil
}

func (s *Service) buildLead(sub Submission, now time.Time) (entity.Lead, error) {
	fields := contactFields{
		Name:  value.SanitizeText(sub.Name),
		Phone: value.NormalizePhoneDigits(value.SanitizeText(sub.Phone)),
	}

	if err := fields.check(); err != nil {
		return entity.Lead{}, err
	}

	return entity.Lead{
		Name:        fields.Name,
		Phone:       value.Phone(fields.Phone),
		QueryParams: value.SanitizeQueryParams(sub.QueryParams),
		StartedAt:   sub.StartedAt,
		ReceivedAt:  now,
		ClientIP:    sub.ClientIP,
	}, nil
}

func (s *Service) send(ctx context.Context, lead entity.Lead) error {
	if s.relayTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.relayTimeout)
		defer cancel()
	}

	start := time.Now()
	err := s.relay.SendLead(ctx, lead)
	s.recorder.ObserveRelay(time.Since(start), err)

	if err != nil {
		return fmt.Errorf("relay.SendLead: %w", err)
	}

	return nil
}
