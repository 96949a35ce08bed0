package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/channeling-service/internal/domain/port"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/valueobject"
)

const keyPrefix = "channeling:rate_config:"

// Store is the subset of redis.Cmdable the cache needs.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type cachedRateConfig struct {
	Rates  map[string]decimal.Decimal `json:"rates"`
	Active bool                       `json:"active"`
}

// RateConfigCache is a read-through Redis cache in front of a
// port.RateConfigRepository. Redis failures degrade to the backing store.
type RateConfigCache struct {
	next   port.RateConfigRepository
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

// NewRateConfigCache wraps next.
func NewRateConfigCache(next port.RateConfigRepository, store Store, ttl time.Duration, logger *slog.Logger) *RateConfigCache {
	return &RateConfigCache{next: next, store: store, ttl: ttl, logger: logger}
}

func cacheKey(channelingType valueobject.ChannelingType) string {
	return keyPrefix + channelingType.String()
}

// FindActive serves from Redis when possible and populates it on a miss.
func (c *RateConfigCache) FindActive(ctx context.Context, channelingType valueobject.ChannelingType) (valueobject.RateConfig, error) {
	key := cacheKey(channelingType)

	raw, err := c.store.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached cachedRateConfig
		if err := json.Unmarshal(raw, &cached); err == nil {
			return valueobject.NewRateConfig(cached.Rates, cached.Active), nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable rate config cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "rate config cache read failed", "key", key, "error", err)
	}

	cfg, err := c.next.FindActive(ctx, channelingType)
	if err != nil {
		return valueobject.RateConfig{}, err
	}

	payload, err := json.Marshal(cachedRateConfig{Rates: cfg.Rates(), Active: cfg.Active()})
	if err != nil {
		return cfg, nil
	}
	if err := c.store.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "rate config cache write failed", "key", key, "error", err)
	}
	return cfg, nil
}

// Save writes through to the backing store and evicts the cached entry.
func (c *RateConfigCache) Save(ctx context.Context, channelingType valueobject.ChannelingType, cfg valueobject.RateConfig) error {
	if err := c.next.Save(ctx, channelingType, cfg); err != nil {
		return err
	}

	key := cacheKey(channelingType)
	if err := c.store.Del(ctx, key).Err(); err != nil {
		c.logger.WarnContext(ctx, "rate config cache eviction failed, entry expires with TTL",
			"key", key, "ttl", c.ttl, "error", err)
	}
	return nil
}
