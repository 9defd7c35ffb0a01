// Package keypair wraps the stellar keypairs with the network-bound
// signatures and the cached verifier of the transaction sources.
package keypair

import (
	"github.com/btcsuite/btcutil/base58"
	lru "github.com/hashicorp/golang-lru"
	stellar "github.com/stellar/go/keypair"

	"boscoin.io/minidao/lib/errors"
)

type (
	Full = stellar.Full
	KP   = stellar.KP
)

var (
	Master = stellar.Master
	Parse  = stellar.Parse
)

// MakeSignature makes signature from given hash string
func MakeSignature(kp KP, networkID []byte, hash string) ([]byte, error) {
	return kp.Sign(append(networkID, []byte(hash)...))
}

// Verifier checks base58 signatures made by `MakeSignature`. Parsed public
// keys are kept in a LRU cache, so the same caller is parsed only once.
type Verifier struct {
	networkID []byte
	cache     *lru.Cache
}

func NewVerifier(networkID []byte, cacheSize int) *Verifier {
	cache, err := lru.New(cacheSize)
	if err != nil {
		panic(err)
	}

	return &Verifier{
		networkID: networkID,
		cache:     cache,
	}
}

// Parse returns the public keypair of address; an unparsable address is
// `errors.BadPublicAddress`.
func (v *Verifier) Parse(address string) (KP, error) {
	if cached, ok := v.cache.Get(address); ok {
		return cached.(KP), nil
	}

	kp, err := stellar.Parse(address)
	if err != nil {
		return nil, errors.BadPublicAddress
	}
	v.cache.Add(address, kp)

	return kp, nil
}

func (v *Verifier) Verify(address, hash, signature string) error {
	kp, err := v.Parse(address)
	if err != nil {
		return err
	}

	decoded := base58.Decode(signature)
	if len(decoded) < 1 {
		return errors.InvalidSignature
	}

	if err := kp.Verify(append(append([]byte{}, v.networkID...), []byte(hash)...), decoded); err != nil {
		return errors.InvalidSignature
	}

	return nil
}

func (v *Verifier) NetworkID() []byte {
	return v.networkID
}
