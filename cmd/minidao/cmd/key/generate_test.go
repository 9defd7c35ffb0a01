package key

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/require"
)

func TestGenerateKP(t *testing.T) {
	{ // random
		a, err := generateKP("", false)
		require.NoError(t, err)
		b, err := generateKP("", false)
		require.NoError(t, err)
		require.NotEqual(t, a.Address(), b.Address())
	}

	{ // passphrase
		a, err := generateKP("show me", false)
		require.NoError(t, err)
		b, err := generateKP("show me", false)
		require.NoError(t, err)
		require.Equal(t, a.Seed(), b.Seed())
	}

	{ // seed
		kp, _ := keypair.Random()
		parsed, err := generateKP(kp.Seed(), true)
		require.NoError(t, err)
		require.Equal(t, kp.Address(), parsed.Address())

		_, err = generateKP(kp.Address(), true)
		require.Error(t, err)

		_, err = generateKP("findme", true)
		require.Error(t, err)
	}
}

func TestKeyEncode(t *testing.T) {
	kp, _ := keypair.Random()
	v := keyPair{Seed: kp.Seed(), Address: kp.Address()}

	var b bytes.Buffer
	require.NoError(t, onelineEncode(v, &b))
	require.Equal(t, kp.Seed()+" "+kp.Address()+"\n", b.String())

	b.Reset()
	require.NoError(t, defaultEncode(v, &b))
	require.True(t, strings.Contains(b.String(), kp.Address()))
	require.False(t, strings.Contains(b.String(), "Passphrase"))
}
