package common

import (
	"time"
)

//
// Config carries the node-level settings which are not part of the governed
// state: the network id every signature is bound to, the HTTP timeouts, the
// response cache and the size of the caches used while verifying callers.
//
type Config struct {
	NetworkID []byte

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	KeypairCacheSize    int
	MaxLimitListOptions uint64

	HTTPCacheAdapter    string
	HTTPCachePoolSize   int
	HTTPCacheRedisAddrs map[string]string
	HTTPCacheTTL        time.Duration

	// RateLimitAPI is the per-ip limit of the API requests in the format of
	// `<limit>-<period>`, like `100-S`; empty is unlimited.
	RateLimitAPI string
}

func NewConfig(networkID []byte) Config {
	p := Config{}

	p.NetworkID = networkID
	p.RequestTimeout = 10 * time.Second
	p.ShutdownTimeout = 5 * time.Second
	p.KeypairCacheSize = DefaultKeypairCacheSize
	p.MaxLimitListOptions = DefaultMaxLimitListOptions

	p.HTTPCachePoolSize = HTTPCachePoolSize
	p.HTTPCacheTTL = HTTPCacheTTL

	return p
}
