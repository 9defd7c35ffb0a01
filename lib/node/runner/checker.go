package runner

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/observer"
	"boscoin.io/minidao/lib/contract"
	"boscoin.io/minidao/lib/contract/context"
	"boscoin.io/minidao/lib/contract/value"
	"boscoin.io/minidao/lib/dao"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/storage"
	"boscoin.io/minidao/lib/transaction"
	"boscoin.io/minidao/lib/transaction/operation"
)

// DefaultSubmitCheckerFuncs run while the node lock is held; every write
// goes into one storage transaction, which is committed by the last one.
var DefaultSubmitCheckerFuncs = []common.CheckerFunc{
	SubmitOpenStorageTransaction,
	SubmitCheckSequenceID,
	SubmitRunOperation,
	SubmitIncreaseSequenceID,
	SubmitCommit,
}

type SubmitChecker struct {
	common.DefaultChecker

	NodeRunner  *NodeRunner
	Transaction transaction.Transaction
	Log         logging.Logger

	Backend *storage.LevelDBBackend
	Result  *value.Value
	Events  []observer.Event

	committed bool
}

// Discard drops the storage transaction unless it was committed.
func (c *SubmitChecker) Discard() {
	if c.Backend == nil || c.committed {
		return
	}

	if err := c.Backend.Discard(); err != nil {
		c.Log.Error("failed to discard storage transaction", "error", err)
	}
}

func SubmitOpenStorageTransaction(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*SubmitChecker)

	checker.Backend, err = checker.NodeRunner.Storage().OpenTransaction()

	return
}

func SubmitCheckSequenceID(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*SubmitChecker)

	return transaction.CheckSequenceID(checker.Backend, checker.Transaction)
}

// SubmitRunOperation runs the operation with the verified source as the
// caller.
func SubmitRunOperation(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*SubmitChecker)

	ctx := context.NewContext(dao.Identity(checker.Transaction.Source()), checker.Backend)

	switch body := checker.Transaction.B.Operation.B.(type) {
	case operation.ContractDeploy:
		checker.Result, err = contract.Deploy(ctx, body.DeployCode())
	case operation.ContractExecute:
		checker.Result, err = contract.Execute(ctx, body.ExecCode())
	default:
		err = errors.InvalidOperation
	}

	if err != nil {
		return
	}

	checker.Events = ctx.Events()

	return
}

func SubmitIncreaseSequenceID(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*SubmitChecker)

	_, err = transaction.IncreaseSequenceID(checker.Backend, checker.Transaction.Source())

	return
}

func SubmitCommit(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*SubmitChecker)

	if err = checker.Backend.Commit(); err != nil {
		return
	}
	checker.committed = true

	return
}
