package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockTimeout is returned when a Redis lock could not be taken within the retry budget.
var ErrLockTimeout = errors.New("ledger: lock not acquired")

const redisKeyPrefix = "footle:ledger-lock:"

var _ Locker = (*RedisLocker)(nil)

// RedisLocker serialises work per Key across processes sharing one Redis.
// A short TTL keeps a crashed holder from blocking the key for the whole day.
type RedisLocker struct {
	client  *redis.Client
	ttl     time.Duration
	retries int
	backoff time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration, retries int, backoff time.Duration) *RedisLocker {
	return &RedisLocker{
		client:  client,
		ttl:     ttl,
		retries: retries,
		backoff: backoff,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key Key) (func(), error) {
	redisKey := redisKeyPrefix + key.String()
	token := uuid.NewString()

	for attempt := 0; attempt <= l.retries; attempt++ {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", redisKey, err)
		}
		if ok {
			return func() { l.release(redisKey, token) }, nil
		}
		if attempt < l.retries {
			select {
			case <-time.After(l.backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrLockTimeout, redisKey)
}

func (l *RedisLocker) release(redisKey, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil {
		log.Error("Failed to release ledger lock", "key", redisKey, "error", err)
	}
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)
