package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyLimiter counts requests in fixed one-minute windows shared by all instances.
type ValkeyLimiter struct {
	client valkey.Client
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewValkeyLimiter allows requestsPerMinute+burst requests per key and minute.
func NewValkeyLimiter(client valkey.Client, prefix string, requestsPerMinute, burst int) *ValkeyLimiter {
	if prefix == "" {
		prefix = "fitcheck:ratelimit"
	}
	return &ValkeyLimiter{
		client: client,
		prefix: prefix,
		limit:  int64(requestsPerMinute + burst),
		window: time.Minute,
		now:    time.Now,
	}
}

// Allow implements Limiter.
func (l *ValkeyLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := l.windowKey(key)
	count, err := l.client.Do(ctx, l.client.B().Incr().Key(windowKey).Build()).AsInt64()
	if err != nil {
		return false, err
	}
	if count == 1 {
		seconds := int64(l.window / time.Second)
		if err := l.client.Do(ctx, l.client.B().Expire().Key(windowKey).Seconds(seconds).Build()).Error(); err != nil {
			return false, err
		}
	}
	return count <= l.limit, nil
}

func (l *ValkeyLimiter) windowKey(key string) string {
	return fmt.Sprintf("%s:%s:%d", l.prefix, key, l.now().Unix()/int64(l.window/time.Second))
}

var _ Limiter = (*ValkeyLimiter)(nil)
