package httpcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRedisAdapterUnavailable(t *testing.T) {
	a := NewRedisCacheAdapter(&RedisRingOptions{
		Addrs: map[string]string{
			"server": "127.0.0.1:1",
		},
	})

	a.Set("test1", &Response{
		Value:      []byte("value 1"),
		StatusCode: 200,
		Expiration: time.Now().Add(time.Minute),
	})

	_, ok := a.Get("test1")
	require.False(t, ok)
}
