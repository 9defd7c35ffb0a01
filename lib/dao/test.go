package dao

import (
	"boscoin.io/minidao/lib/common/keypair"
)

func NewTestIdentity() Identity {
	return Identity(keypair.Random().Address())
}
