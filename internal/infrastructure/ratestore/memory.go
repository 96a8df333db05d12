package ratestore

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"lead_relay/internal/domain/entity"
)

// Memory хранит окна в памяти процесса. Истёкшие записи go-cache вычищает
// сам, поэтому таблица не растёт с числом разных клиентов.
type Memory struct {
	mu      sync.Mutex
	buckets *cache.Cache
}

func NewMemory(cleanupInterval time.Duration) *Memory {
	return &Memory{
		buckets: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

func (m *Memory) Hit(_ context.Context, key string, window time.Duration, now time.Time) (entity.RateBucket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var bucket entity.RateBucket

	if v, ok := m.buckets.Get(key); ok {
		bucket, _ = v.(entity.RateBucket)
	}

	if bucket.ResetAt.IsZero() || bucket.Expired(now) {
		bucket = entity.RateBucket{ResetAt: now.Add(window)}
	}

	bucket.Count++

	// запись переживает окно на window, чтобы граница now == ResetAt
	// ещё считалась внутри окна
	m.buckets.Set(key, bucket, bucket.ResetAt.Sub(now)+window)

	return bucket, nil
}

// Len число клиентов с незакрытым окном.
func (m *Memory) Len() int {
	return m.buckets.ItemCount()
}
