package resource

import (
	"github.com/nvellon/hal"
)

type Account struct {
	address    string
	sequenceID uint64
}

func NewAccount(address string, sequenceID uint64) *Account {
	return &Account{
		address:    address,
		sequenceID: sequenceID,
	}
}

func (a Account) GetMap() hal.Entry {
	return hal.Entry{
		"address":     a.address,
		"sequence_id": a.sequenceID,
	}
}

func (a Account) Resource() *hal.Resource {
	return hal.NewResource(a, a.LinkSelf())
}

func (a Account) LinkSelf() string {
	return replaceURL(URLAccounts, "{id}", a.address)
}
