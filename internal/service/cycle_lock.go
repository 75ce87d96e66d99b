package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CycleLock guards against overlapping worker cycles. The worker itself is
// stateless between invocations, so a periodic trigger plus an HTTP trigger
// could otherwise run two drains of the same pending batch at once.
type CycleLock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// redisCycleLock holds the lock as a single Redis key with a TTL, so a
// crashed cycle never wedges processing. Release only deletes the key when
// it still holds this process's token.
type redisCycleLock struct {
	rdb   *redis.Client
	key   string
	ttl   time.Duration
	token string
}

func NewRedisCycleLock(rdb *redis.Client, key string, ttl time.Duration) CycleLock {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisCycleLock{rdb: rdb, key: key, ttl: ttl}
}

func (l *redisCycleLock) Acquire(ctx context.Context) (bool, error) {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return false, err
	}
	if ok {
		l.token = token
	}
	return ok, nil
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (l *redisCycleLock) Release(ctx context.Context) error {
	if l.token == "" {
		return nil
	}
	err := releaseScript.Run(ctx, l.rdb, []string{l.key}, l.token).Err()
	l.token = ""
	return err
}

// NopCycleLock always grants the lock. Used when Redis is not configured
// and a single process is the only worker trigger.
type NopCycleLock struct{}

func (NopCycleLock) Acquire(context.Context) (bool, error) { return true, nil }
func (NopCycleLock) Release(context.Context) error         { return nil }
