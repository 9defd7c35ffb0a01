package httpcache

import (
	"time"

	redisCache "github.com/go-redis/cache"
	"github.com/go-redis/redis"
	"github.com/vmihailenco/msgpack"
)

// RedisKeyNamespace is prepended to every key, so the nodes can share the
// redis with the others.
const RedisKeyNamespace = "minidao:httpcache:"

// RedisCacheAdapter stores the msgpack encoded responses in the redis ring;
// the responses are shared by the nodes using the same ring.
type RedisCacheAdapter struct {
	store *redisCache.Codec
}

type RedisRingOptions redis.RingOptions

func NewRedisCacheAdapter(opt *RedisRingOptions) *RedisCacheAdapter {
	ringOptions := redis.RingOptions(*opt)

	return &RedisCacheAdapter{
		store: &redisCache.Codec{
			Redis: redis.NewRing(&ringOptions),
			Marshal: func(v interface{}) ([]byte, error) {
				return msgpack.Marshal(v)
			},
			Unmarshal: func(b []byte, v interface{}) error {
				return msgpack.Unmarshal(b, v)
			},
		},
	}
}

func (a *RedisCacheAdapter) Get(key string) (*Response, bool) {
	resp := new(Response)
	if err := a.store.Get(RedisKeyNamespace+key, resp); err != nil {
		if err != redisCache.ErrCacheMiss {
			log.Debug("failed to load response", "key", key, "error", err)
		}
		return nil, false
	}
	return resp, true
}

func (a *RedisCacheAdapter) Set(key string, resp *Response) {
	var e time.Duration
	if !resp.Expiration.IsZero() {
		if e = time.Until(resp.Expiration); e <= 0 {
			return
		}
	}

	if err := a.store.Set(&redisCache.Item{
		Key:        RedisKeyNamespace + key,
		Object:     resp,
		Expiration: e,
	}); err != nil {
		log.Debug("failed to store response", "key", key, "error", err)
	}
}

func (a *RedisCacheAdapter) Remove(key string) {
	a.store.Delete(RedisKeyNamespace + key)
}
