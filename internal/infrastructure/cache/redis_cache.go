package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/harborbank/servicing/internal/domain/model"
	"github.com/harborbank/servicing/internal/domain/port"
)

const redisKeyPrefix = "servicing:schedule:"

// DefaultTTL is applied when no TTL is configured for the Redis cache.
const DefaultTTL = 15 * time.Minute

// redisEnvelope is the stored form: the fingerprint travels with the
// schedule so staleness is detectable without a second key.
type redisEnvelope struct {
	Fingerprint string                `json:"fingerprint"`
	Schedule    model.PaymentSchedule `json:"schedule"`
}

// RedisScheduleCache is a shared schedule cache for multi-instance
// deployments. Redis failures degrade to recomputation; a broken cache never
// fails a schedule request.
type RedisScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

var _ port.ScheduleCache = (*RedisScheduleCache)(nil)

// NewRedisScheduleCache wraps an existing Redis client. Zero ttl means
// DefaultTTL.
func NewRedisScheduleCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisScheduleCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisScheduleCache{client: client, ttl: ttl, logger: logger}
}

// GetOrCalculate implements port.ScheduleCache.
func (c *RedisScheduleCache) GetOrCalculate(
	ctx context.Context,
	loanID string,
	terms model.LoanTerms,
	compute port.ComputeFunc,
) (model.PaymentSchedule, bool, error) {
	fp := terms.Fingerprint()
	key := redisKeyPrefix + loanID

	if s, ok := c.fetch(ctx, key, fp); ok {
		return s, true, nil
	}

	var fresh bool
	v, err, _ := c.group.Do(key+"\x00"+fp, func() (any, error) {
		if s, ok := c.fetch(ctx, key, fp); ok {
			return s, nil
		}
		s, err := compute()
		if err != nil {
			return nil, err
		}
		fresh = true
		c.put(ctx, key, fp, s)
		return s, nil
	})
	if err != nil {
		return model.PaymentSchedule{}, false, err
	}
	return v.(model.PaymentSchedule), !fresh, nil
}

// Invalidate implements port.ScheduleCache.
func (c *RedisScheduleCache) Invalidate(ctx context.Context, loanID string) error {
	if err := c.client.Del(ctx, redisKeyPrefix+loanID).Err(); err != nil {
		return fmt.Errorf("invalidate schedule cache: %w", err)
	}
	return nil
}

func (c *RedisScheduleCache) fetch(ctx context.Context, key, fingerprint string) (model.PaymentSchedule, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("schedule cache read failed", "key", key, "error", err)
		}
		return model.PaymentSchedule{}, false
	}
	var env redisEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Warn("schedule cache entry corrupt, dropping", "key", key, "error", err)
		_ = c.client.Del(ctx, key).Err()
		return model.PaymentSchedule{}, false
	}
	if env.Fingerprint != fingerprint {
		return model.PaymentSchedule{}, false
	}
	return env.Schedule, true
}

func (c *RedisScheduleCache) put(ctx context.Context, key, fingerprint string, s model.PaymentSchedule) {
	raw, err := json.Marshal(redisEnvelope{Fingerprint: fingerprint, Schedule: s})
	if err != nil {
		c.logger.Warn("schedule cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("schedule cache write failed", "key", key, "error", err)
	}
}
