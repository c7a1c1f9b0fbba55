package redissvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/boutiqueluxe/boutique-tracker/internal/repo"
	"github.com/redis/go-redis/v9"
)

type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisService(rdb *redis.Client, ctx context.Context) *RedisService {
	return &RedisService{
		rdb: rdb,
		ctx: ctx,
	}
}

func (a *RedisService) Rdb() *redis.Client {
	return a.rdb
}

func (a *RedisService) Ctx() context.Context {
	return a.ctx
}

const metricsKey = "dashboard:metrics"

// GetCachedMetrics returns the cached dashboard aggregates, if present.
func (a *RedisService) GetCachedMetrics() (repo.Metrics, bool) {
	var m repo.Metrics
	raw, err := a.rdb.Get(a.ctx, metricsKey).Bytes()
	if err != nil {
		return m, false
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return m, false
	}
	return m, true
}

// CacheMetrics stores the dashboard aggregates with a TTL.
func (a *RedisService) CacheMetrics(m repo.Metrics, ttl time.Duration) {
	raw, err := json.Marshal(m)
	if err != nil {
		return
	}
	a.rdb.Set(a.ctx, metricsKey, raw, ttl)
}

// InvalidateMetrics drops the cached aggregates. Called after every catalog
// or ledger mutation so reads never see stale totals.
func (a *RedisService) InvalidateMetrics() {
	a.rdb.Del(a.ctx, metricsKey)
}
