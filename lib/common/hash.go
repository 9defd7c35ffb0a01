package common

import (
	"github.com/ethereum/go-ethereum/rlp"
	"golang.org/x/crypto/argon2"
)

// argon2id parameters of `MakeHash`; changing them changes every
// transaction hash.
var (
	HashSalt           = []byte("minidao")
	hashTime    uint32 = 3
	hashMemory  uint32 = 32 * 1024
	hashThreads uint8  = 4
	hashKeyLen  uint32 = 32
)

func MakeHash(b []byte) []byte {
	return argon2.Key(b, HashSalt, hashTime, hashMemory, hashThreads, hashKeyLen)
}

// MakeObjectHash hashes the rlp encoding of `i`.
func MakeObjectHash(i interface{}) ([]byte, error) {
	encoded, err := rlp.EncodeToBytes(i)
	if err != nil {
		return nil, err
	}

	return MakeHash(encoded), nil
}

func MustMakeObjectHash(i interface{}) []byte {
	b, err := MakeObjectHash(i)
	if err != nil {
		panic(err)
	}
	return b
}
