package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRedisAddrs(t *testing.T) {
	addrs, err := ParseRedisAddrs("")
	require.NoError(t, err)
	require.Equal(t, 0, len(addrs))

	addrs, err = ParseRedisAddrs("localhost:6379, a=10.0.0.1:6379")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"shard0": "localhost:6379", "a": "10.0.0.1:6379"}, addrs)

	_, err = ParseRedisAddrs("a=localhost:6379,a=localhost:6380")
	require.Error(t, err)

	_, err = ParseRedisAddrs("=localhost:6379")
	require.Error(t, err)
}
