package httpcache

import (
	"fmt"

	"boscoin.io/minidao/lib/common"
)

func NewAdapter(cfg common.Config) (Adapter, error) {
	switch cfg.HTTPCacheAdapter {
	case common.HTTPCacheMemoryAdapterName:
		return NewMemCacheAdapter(cfg.HTTPCachePoolSize)
	case common.HTTPCacheRedisAdapterName:
		if len(cfg.HTTPCacheRedisAddrs) < 1 {
			return nil, fmt.Errorf("redis cache adapter needs at least one address")
		}
		return NewRedisCacheAdapter(&RedisRingOptions{Addrs: cfg.HTTPCacheRedisAddrs}), nil
	default:
		return nil, fmt.Errorf("unknown http cache adapter, %q", cfg.HTTPCacheAdapter)
	}
}

// NewCache returns `NopClient` when no adapter is configured.
func NewCache(cfg common.Config, opts ...ClientOption) (Cache, error) {
	if cfg.HTTPCacheAdapter == "" {
		return NewNopClient(), nil
	}

	adapter, err := NewAdapter(cfg)
	if err != nil {
		return nil, err
	}

	return NewClient(
		WithAdapter(adapter),
		WithExpire(cfg.HTTPCacheTTL),
		WithOptions(opts...),
	)
}
