package lock

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"transport-optimizer-service/internal/ports"
)

// RedisLocker serializes optimizer work per travel date across processes.
// Repeated admin clicks and concurrent executions for the same date contend
// on one key; losers get ports.ErrRunInProgress immediately.
type RedisLocker struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &RedisLocker{Client: client, TTL: ttl}
}

// Release only deletes the key while it still holds our token, so an
// expired lock taken over by another run is never released from here.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (l *RedisLocker) Acquire(ctx context.Context, date string) (func(), error) {
	key := "optimizer:lock:" + date
	token := uuid.NewString()

	ok, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock for %s: %w", date, err)
	}
	if !ok {
		return nil, ports.ErrRunInProgress
	}

	release := func() {
		// Detached context: the lock must be released even when the
		// request context is already cancelled.
		rctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := releaseScript.Run(rctx, l.Client, []string{key}, token).Err(); err != nil {
			log.Printf("op=lock.release date=%s err=%v", date, err)
		}
	}
	return release, nil
}

// Noop satisfies the locker port for single-process local runs without redis.
type Noop struct{}

func (Noop) Acquire(ctx context.Context, date string) (func(), error) {
	return func() {}, nil
}
