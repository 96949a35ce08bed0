package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/services/channeling-service/internal/domain/port"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/port/mocks"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/valueobject"
)

// memoryStore is an in-process Store. getErr and delErr simulate an
// unreachable Redis.
type memoryStore struct {
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	delErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) Get(_ context.Context, key string) *redis.StringCmd {
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (m *memoryStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	m.data[key] = value.([]byte)
	m.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryStore) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if m.delErr != nil {
		return redis.NewIntResult(0, m.delErr)
	}
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bniTable() valueobject.RateConfig {
	return valueobject.NewRateConfig(map[string]decimal.Decimal{"6": decimal.RequireFromString("2.25")}, true)
}

func TestRateConfigCache_FindActive(t *testing.T) {
	ctx := context.Background()

	t.Run("a miss loads from the store and fills the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRateConfigRepository(ctrl)
		repo.EXPECT().FindActive(gomock.Any(), valueobject.ChannelingTypeBNI).Return(bniTable(), nil).Times(1)

		store := newMemoryStore()
		c := NewRateConfigCache(repo, store, time.Minute, discardLogger())

		first, err := c.FindActive(ctx, valueobject.ChannelingTypeBNI)
		require.NoError(t, err)
		second, err := c.FindActive(ctx, valueobject.ChannelingTypeBNI)
		require.NoError(t, err)

		assert.True(t, first.Addend(6).Equal(decimal.RequireFromString("2.25")))
		assert.True(t, second.Addend(6).Equal(decimal.RequireFromString("2.25")))
		assert.True(t, second.Active())
		assert.Equal(t, time.Minute, store.ttls["channeling:rate_config:BNI"])
	})

	t.Run("not found is passed through uncached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRateConfigRepository(ctrl)
		repo.EXPECT().FindActive(gomock.Any(), gomock.Any()).Return(valueobject.RateConfig{}, port.ErrNotFound).Times(2)

		store := newMemoryStore()
		c := NewRateConfigCache(repo, store, time.Minute, discardLogger())

		for i := 0; i < 2; i++ {
			_, err := c.FindActive(ctx, valueobject.ChannelingTypeBNI)
			assert.ErrorIs(t, err, port.ErrNotFound)
		}
		assert.Empty(t, store.data)
	})

	t.Run("an unreachable cache falls back to the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRateConfigRepository(ctrl)
		repo.EXPECT().FindActive(gomock.Any(), gomock.Any()).Return(bniTable(), nil)

		store := newMemoryStore()
		store.getErr = errors.New("dial tcp: connection refused")
		c := NewRateConfigCache(repo, store, time.Minute, discardLogger())

		cfg, err := c.FindActive(ctx, valueobject.ChannelingTypeBNI)
		require.NoError(t, err)
		assert.True(t, cfg.Active())
	})

	t.Run("a corrupt entry is reloaded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRateConfigRepository(ctrl)
		repo.EXPECT().FindActive(gomock.Any(), gomock.Any()).Return(bniTable(), nil)

		store := newMemoryStore()
		store.data["channeling:rate_config:BNI"] = []byte("{not json")
		c := NewRateConfigCache(repo, store, time.Minute, discardLogger())

		cfg, err := c.FindActive(ctx, valueobject.ChannelingTypeBNI)
		require.NoError(t, err)
		assert.True(t, cfg.Addend(6).Equal(decimal.RequireFromString("2.25")))
	})
}

func TestRateConfigCache_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("evicts the cached entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRateConfigRepository(ctrl)
		repo.EXPECT().Save(gomock.Any(), valueobject.ChannelingTypeBNI, gomock.Any()).Return(nil)

		store := newMemoryStore()
		store.data["channeling:rate_config:BNI"] = []byte(`{"rates":{},"active":true}`)
		c := NewRateConfigCache(repo, store, time.Minute, discardLogger())

		require.NoError(t, c.Save(ctx, valueobject.ChannelingTypeBNI, bniTable()))
		assert.NotContains(t, store.data, "channeling:rate_config:BNI")
	})

	t.Run("store failures leave the cache untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRateConfigRepository(ctrl)
		repo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("deadlock detected"))

		store := newMemoryStore()
		store.data["channeling:rate_config:BNI"] = []byte(`{"rates":{},"active":true}`)
		c := NewRateConfigCache(repo, store, time.Minute, discardLogger())

		require.Error(t, c.Save(ctx, valueobject.ChannelingTypeBNI, bniTable()))
		assert.Contains(t, store.data, "channeling:rate_config:BNI")
	})

	t.Run("eviction failures do not fail the save", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRateConfigRepository(ctrl)
		repo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		store := newMemoryStore()
		store.delErr = errors.New("i/o timeout")
		c := NewRateConfigCache(repo, store, time.Minute, discardLogger())

		assert.NoError(t, c.Save(ctx, valueobject.ChannelingTypeBNI, bniTable()))
	})
}
