package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/minidao/lib/contract/value"
	"boscoin.io/minidao/lib/transaction"
)

// Result is the outcome of a submitted transaction.
type Result struct {
	tx    transaction.Transaction
	value *value.Value
}

func NewResult(tx transaction.Transaction, v *value.Value) *Result {
	if v == nil {
		v = value.NilValue
	}

	return &Result{
		tx:    tx,
		value: v,
	}
}

func (r Result) GetMap() hal.Entry {
	return hal.Entry{
		"hash":        r.tx.GetHash(),
		"source":      r.tx.Source(),
		"sequence_id": r.tx.B.SequenceID,
		"operation":   r.tx.B.Operation.H.Type,
		"contract":    r.tx.B.Operation.B.ContractAddress(),
		"result":      r.value,
	}
}

func (r Result) Resource() *hal.Resource {
	rs := hal.NewResource(r, r.LinkSelf())
	rs.AddLink("account", hal.NewLink(replaceURL(URLAccounts, "{id}", r.tx.Source())))
	rs.AddLink("dao", hal.NewLink(replaceURL(URLDAOs, "{id}", r.tx.B.Operation.B.ContractAddress())))
	return rs
}

func (r Result) LinkSelf() string {
	return URLTransactions
}
