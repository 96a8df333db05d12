package ratestore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lead_relay/internal/domain/entity"
)

const defaultKeyPrefix = "lead_relay:ratelimit:"

// KEYS[1] ключ клиента, ARGV[1] окно в миллисекундах.
// Возвращает {счётчик, оставшийся TTL в мс}.
var hitScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`) //nolint:gochecknoglobals

// Redis хранит окна в Redis, чтобы несколько экземпляров сервиса делили
// один лимит. Окно отсчитывается по часам Redis: ключ живёт window с
// первого запроса.
type Redis struct {
	client redis.Scripter
	prefix string
}

func NewRedis(client redis.Scripter) *Redis {
	return &Redis{
		client: client,
		prefix: defaultKeyPrefix,
	}
}

func (r *Redis) WithPrefix(prefix string) *Redis {
	r.prefix = prefix
	return r
}

func (r *Redis) Hit(ctx context.Context, key string, window time.Duration, now time.Time) (entity.RateBucket, error) {
	res, err := hitScript.Run(ctx, r.client, []string{r.prefix + key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return entity.RateBucket{}, fmt.Errorf("hitScript.Run: %w", err)
	}

	if len(res) != 2 { //nolint:mnd // count, ttl
		return entity.RateBucket{}, fmt.Errorf("hitScript.Run: unexpected reply %v", res)
	}

	return entity.RateBucket{
		Count:   int(res[0]),
		ResetAt: now.Add(time.Duration(res[1]) * time.Millisecond),
	}, nil
}
