package common

import "time"

const (
	// DefaultKeypairCacheSize is the number of parsed public keys kept by the
	// signature verifier.
	DefaultKeypairCacheSize int = 1024

	// DefaultMaxLimitListOptions caps the `limit` of list queries.
	DefaultMaxLimitListOptions uint64 = 100

	TransactionVersionV1 = "1"

	HTTPCacheMemoryAdapterName = "mem"
	HTTPCacheRedisAdapterName  = "redis"
	HTTPCachePoolSize          = 10000
	HTTPCacheTTL               = 10 * time.Second
)
