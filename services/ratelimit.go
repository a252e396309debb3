package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rpupo63/ambitious-journal-backend/errs"
)

// RedisCounter counts hits per key in fixed windows stored in Redis.
type RedisCounter struct {
	rdb    *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisCounter(redisURL, prefix string) (*RedisCounter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errs.NewConfigError("REDIS_URL", err)
	}
	return newRedisCounter(redis.NewClient(opts), prefix), nil
}

func newRedisCounter(rdb *redis.Client, prefix string) *RedisCounter {
	return &RedisCounter{rdb: rdb, prefix: prefix, now: time.Now}
}

// Hit records one request for key in the current window and returns the
// window's count so far. The window key expires shortly after the window ends.
func (c *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	bucket := c.now().UnixNano() / int64(window)
	redisKey := fmt.Sprintf("%s:%s:%d", c.prefix, key, bucket)

	count, err := c.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		c.rdb.PExpire(ctx, redisKey, window+time.Second)
	}
	return count, nil
}

func (c *RedisCounter) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *RedisCounter) Close() error {
	return c.rdb.Close()
}
