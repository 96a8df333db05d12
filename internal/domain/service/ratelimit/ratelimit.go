package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lead_relay/internal/domain"
	"lead_relay/internal/domain/entity"
	"lead_relay/pkg/errcodes"
	"lead_relay/pkg/logx"
)

// Store хранилище счётчиков фиксированного окна. Hit атомарно увеличивает
// счётчик ключа и возвращает его состояние после увеличения. Если окно ключа
// истекло (now > ResetAt) или ключа нет, открывается новое окно до now+window.
type Store interface {
	Hit(ctx context.Context, key string, window time.Duration, now time.Time) (entity.RateBucket, error)
}

type Limiter struct {
	store  Store
	max    int
	window time.Duration
	now    func() time.Time
}

func NewLimiter(store Store, maxHits int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		max:    maxHits,
		window: window,
		now:    time.Now,
	}
}

func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

func (l *Limiter) Limit() int {
	return l.max
}

func (l *Limiter) Window() time.Duration {
	return l.window
}

// Allow учитывает запрос клиента key. Первые max запросов окна проходят,
// остальные отклоняются до ResetAt. Ошибка хранилища не блокирует клиента:
// решение Allowed вместе с ошибкой, вызывающий решает, логировать ли её.
func (l *Limiter) Allow(ctx context.Context, key string) (entity.RateDecision, error) {
	now := l.now()

	bucket, err := l.store.Hit(ctx, key, l.window, now)
	if err != nil {
		logger(ctx).Warn("rate limit store failed, request allowed",
			logx.Error(err),
			slog.String(logx.FieldClientIP, key),
		)

		return entity.RateDecision{
			Allowed:   true,
			Limit:     l.max,
			Remaining: l.max,
			ResetAt:   now.Add(l.window),
		}, domain.WrapError(fmt.Errorf("store.Hit: %w", err), errcodes.RateLimitStoreFailure, "Rate limit store unavailable")
	}

	return entity.RateDecision{
		Allowed:   bucket.Count <= l.max,
		Limit:     l.max,
		Remaining: max(l.max-bucket.Count, 0),
		ResetAt:   bucket.ResetAt,
	}, nil
}
