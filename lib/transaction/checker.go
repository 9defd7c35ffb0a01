package transaction

import (
	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/transaction/operation"
)

type Checker struct {
	common.DefaultChecker

	Verifier    *keypair.Verifier
	Transaction Transaction
}

func CheckType(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)
	if checker.Transaction.T != TypeTransaction {
		err = errors.InvalidMessage
		return
	}

	return
}

func CheckSource(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)
	if _, err = checker.Verifier.Parse(checker.Transaction.B.Source); err != nil {
		return
	}

	return
}

func CheckOperation(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	op := checker.Transaction.B.Operation
	if !operation.IsValidOperationType(string(op.H.Type)) {
		err = errors.InvalidOperation
		return
	}

	err = op.IsWellFormed(checker.Verifier.NetworkID())

	return
}

func CheckHash(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)
	if checker.Transaction.B.MakeHashString() != checker.Transaction.H.Hash {
		err = errors.InvalidHash
		return
	}

	return
}

func CheckVerifySignature(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	err = checker.Verifier.Verify(
		checker.Transaction.B.Source,
		checker.Transaction.H.Hash,
		checker.Transaction.H.Signature,
	)

	return
}
