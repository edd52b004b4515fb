package ratelimiter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps counters in Redis so that several instances share one budget.
type RedisStore struct {
	rdb       *redis.Client
	namespace string
}

// NewRedisStore creates a RedisStore. If namespace is empty, it uses "ratelimit".
func NewRedisStore(rdb *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = "ratelimit"
	}
	return &RedisStore{rdb: rdb, namespace: namespace}
}

// incrWindowScript はカウンターを加算し、TTLが無ければウィンドウ長で付け直します。
// 加算と期限設定は1回のEVALでアトミックに実行されます。
const incrWindowScript = `local n = redis.call('INCR', KEYS[1])
if redis.call('PTTL', KEYS[1]) < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n`

// Increment implements Store.
func (s *RedisStore) Increment(ctx context.Context, key string, size time.Duration) (int64, error) {
	k := s.namespace + ":" + key
	return s.rdb.Eval(ctx, incrWindowScript, []string{k}, size.Milliseconds()).Int64()
}
