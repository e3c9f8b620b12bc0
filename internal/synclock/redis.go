package synclock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vytor/chessreview/internal/logger"
)

const DefaultKey = "chessreview:sync:lock"

// releaseScript deletes the key only while it still holds our token, so an
// expired lock picked up by another process is left alone.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Redis guards sync runs across processes sharing one store. The key expires
// after ttl so a crashed holder cannot block syncing forever.
type Redis struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, key string, ttl time.Duration) *Redis {
	if key == "" {
		key = DefaultKey
	}
	return &Redis{rdb: rdb, key: key, ttl: ttl}
}

func (r *Redis) TryLock(ctx context.Context) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := r.rdb.SetNX(ctx, r.key, token, r.ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		// The caller's ctx may already be cancelled when the run ends.
		relCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(relCtx, r.rdb, []string{r.key}, token).Err(); err != nil {
			logger.FromContext(ctx).WithPrefix("synclock").Warn("failed to release lock %s: %v", r.key, err)
		}
	}
	return release, true, nil
}
