package keypair

import (
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/require"

	"boscoin.io/minidao/lib/errors"
)

var networkID = []byte("minidao-test-network")

func TestVerifier(t *testing.T) {
	kp := Random()
	v := NewVerifier(networkID, 10)

	signature, err := MakeSignature(kp, networkID, "findme")
	require.NoError(t, err)

	require.NoError(t, v.Verify(kp.Address(), "findme", base58.Encode(signature)))

	{ // cached
		_, ok := v.cache.Get(kp.Address())
		require.True(t, ok)
		require.NoError(t, v.Verify(kp.Address(), "findme", base58.Encode(signature)))
	}

	{ // different hash
		err := v.Verify(kp.Address(), "killme", base58.Encode(signature))
		require.Equal(t, errors.InvalidSignature, err)
	}

	{ // signed by another keypair
		other := Random()
		err := v.Verify(other.Address(), "findme", base58.Encode(signature))
		require.Equal(t, errors.InvalidSignature, err)
	}

	{ // signed for another network
		s, err := MakeSignature(kp, []byte("another-network"), "findme")
		require.NoError(t, err)
		require.Equal(t, errors.InvalidSignature, v.Verify(kp.Address(), "findme", base58.Encode(s)))
	}
}

func TestVerifierBadAddress(t *testing.T) {
	v := NewVerifier(networkID, 10)

	_, err := v.Parse("showme")
	require.Equal(t, errors.BadPublicAddress, err)

	require.Equal(t, errors.InvalidSignature, v.Verify(Random().Address(), "findme", ""))
}
