package transaction

import (
	"github.com/stellar/go/keypair"

	mkeypair "boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/contract/payload"
	"boscoin.io/minidao/lib/transaction/operation"
)

func TestMakeOperation(body operation.Body) operation.Operation {
	op, err := operation.NewOperation(body)
	if err != nil {
		panic(err)
	}

	return op
}

// TestMakeDeployTransaction deploys a new DAO named `name` at a random
// address; the address is returned with the transaction.
func TestMakeDeployTransaction(networkID []byte, kp *keypair.Full, sequenceID uint64, kind, name string) (string, Transaction) {
	target := mkeypair.Random().Address()
	op := TestMakeOperation(operation.NewContractDeploy(target, payload.Native, kind, name))

	tx := NewTransaction(kp.Address(), sequenceID, op)
	tx.Sign(kp, networkID)

	return target, tx
}

func TestMakeExecuteTransaction(networkID []byte, kp *keypair.Full, sequenceID uint64, target, method string, args ...string) Transaction {
	op := TestMakeOperation(operation.NewContractExecute(target, method, args...))

	tx := NewTransaction(kp.Address(), sequenceID, op)
	tx.Sign(kp, networkID)

	return tx
}
