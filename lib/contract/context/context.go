package context

import (
	"boscoin.io/minidao/lib/common/observer"
	"boscoin.io/minidao/lib/contract/payload"
	"boscoin.io/minidao/lib/dao"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/storage"
)

// Context is the environment of one contract call: the verified sender and
// the storage the call writes into. The events collected while running are
// triggered by the caller only after the storage is committed.
type Context struct {
	sender  dao.Identity
	backend *storage.LevelDBBackend

	events []observer.Event
}

func NewContext(sender dao.Identity, backend *storage.LevelDBBackend) *Context {
	return &Context{
		sender:  sender,
		backend: backend,
	}
}

func (c *Context) Sender() dao.Identity {
	return c.sender
}

func (c *Context) SenderAddress() string {
	return string(c.sender)
}

func (c *Context) Backend() *storage.LevelDBBackend {
	return c.backend
}

func (c *Context) PutDeployCode(code *payload.DeployCode) error {
	if err := c.backend.New(payload.GetDeployCodeKey(code.ContractAddress), code); err != nil {
		if errors.StorageRecordAlreadyExists.Is(err) {
			return errors.ContractAlreadyExists
		}
		return err
	}

	return nil
}

func (c *Context) GetDeployCode(address string) (*payload.DeployCode, error) {
	var code payload.DeployCode
	if err := c.backend.Get(payload.GetDeployCodeKey(address), &code); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			return nil, errors.ContractNotFound
		}
		return nil, err
	}

	return &code, nil
}

func (c *Context) Emit(e observer.Event) {
	c.events = append(c.events, e)
}

func (c *Context) Events() []observer.Event {
	return c.events
}
