package common

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/minidao/lib/errors"
)

func TestInStringArray(t *testing.T) {
	a := []string{"deploy", "vote", "propose"}

	i, found := InStringArray(a, "propose")
	require.True(t, found)
	require.Equal(t, 2, i)

	i, found = InStringArray(a, "findme")
	require.False(t, found)
	require.Equal(t, -1, i)
}

func TestGetENVValue(t *testing.T) {
	key := "MINIDAO_TEST_GET_ENV_VALUE"
	os.Unsetenv(key)
	require.Equal(t, "default", GetENVValue(key, "default"))

	os.Setenv(key, "")
	defer os.Unsetenv(key)
	require.Equal(t, "", GetENVValue(key, "default"))
}

func TestParseBoolQueryString(t *testing.T) {
	for _, v := range []string{"true", "Yes", "1"} {
		b, err := ParseBoolQueryString(v)
		require.NoError(t, err)
		require.True(t, b, v)
	}
	for _, v := range []string{"false", "NO", "0"} {
		b, err := ParseBoolQueryString(v)
		require.NoError(t, err)
		require.False(t, b, v)
	}

	_, err := ParseBoolQueryString("maybe")
	require.True(t, errors.BadRequestParameter.Is(err))
}

func TestFormatISO8601(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)
	tm := time.Date(2018, 10, 1, 9, 0, 0, 5, loc)

	require.Equal(t, "2018-10-01T00:00:00.000000005Z", FormatISO8601(tm))
}

func TestMakeObjectHash(t *testing.T) {
	type body struct {
		Source string
		Seq    uint64
	}

	a := MustMakeObjectHash(body{Source: "GA", Seq: 1})
	b := MustMakeObjectHash(body{Source: "GA", Seq: 1})
	c := MustMakeObjectHash(body{Source: "GA", Seq: 2})

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.Len(t, a, 32)
}

func TestParseEndpoint(t *testing.T) {
	e, err := ParseEndpoint("http://LOCALHOST")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:12345", e.String())

	e, err = ParseEndpoint("https://0.0.0.0:2821?TLSCertFile=a.pem")
	require.NoError(t, err)
	require.Equal(t, "https://0.0.0.0:2821", e.String())
	require.Equal(t, "a.pem", e.Query().Get("TLSCertFile"))

	for _, s := range []string{"localhost:2821", "tcp://localhost:2821", "http://localhost:0", "http://localhost:99999"} {
		_, err = ParseEndpoint(s)
		require.Error(t, err, s)
	}
}
