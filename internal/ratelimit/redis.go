package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/roadassist/backend/internal/domain"
)

const redisKeyPrefix = "ntf:rl:"

type redisLimiter struct {
	redis    redis.UniversalClient
	ceilings Ceilings
	period   time.Duration
}

// NewRedisLimiter returns a Limiter with fixed windows stored in redis, so
// multiple instances share one ceiling per (channel, recipient).
func NewRedisLimiter(client redis.UniversalClient, ceilings Ceilings, period time.Duration) *redisLimiter {
	return &redisLimiter{
		redis:    client,
		ceilings: ceilings,
		period:   period,
	}
}

func (l *redisLimiter) Allow(ctx context.Context, channel domain.Channel, recipient string) (bool, error) {
	key := redisKeyPrefix + windowKey(channel, recipient)

	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("incr rate limit window failed: %w", err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.period).Err(); err != nil {
			return false, fmt.Errorf("expire rate limit window failed: %w", err)
		}
	}

	if count > int64(l.ceiling(channel)) {
		return false, nil
	}

	return true, nil
}

func (l *redisLimiter) IsLimited(ctx context.Context, channel domain.Channel, recipient string) (bool, error) {
	key := redisKeyPrefix + windowKey(channel, recipient)

	val, err := l.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get rate limit window failed: %w", err)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, fmt.Errorf("parse rate limit counter failed: %w", err)
	}

	return count >= int64(l.ceiling(channel)), nil
}

func (l *redisLimiter) ceiling(channel domain.Channel) int {
	if c, ok := l.ceilings[channel]; ok && c > 0 {
		return c
	}
	return 1
}
