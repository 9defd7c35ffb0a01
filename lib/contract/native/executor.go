package native

import (
	"boscoin.io/minidao/lib/contract/context"
	"boscoin.io/minidao/lib/contract/payload"
	"boscoin.io/minidao/lib/contract/value"
	"boscoin.io/minidao/lib/errors"
)

type ExecFunc func(ex *NativeExecutor, code *payload.ExecCode) (*value.Value, error)

type NativeExecutor struct {
	Context    *context.Context
	DeployCode *payload.DeployCode

	execFuncs map[string]ExecFunc
}

func NewNativeExecutor(ctx *context.Context, deployCode *payload.DeployCode) *NativeExecutor {
	ex := &NativeExecutor{
		Context:    ctx,
		DeployCode: deployCode,
		execFuncs:  map[string]ExecFunc{},
	}

	if c, ok := getContract(deployCode.Kind); ok {
		c.register(ex)
	}

	return ex
}

func (ex *NativeExecutor) Execute(c *payload.ExecCode) (*value.Value, error) {
	if !ex.HasFunc(c.Method) {
		return nil, errors.ContractMethodNotFound.Clone().SetData("method", c.Method)
	}

	return ex.execFuncs[c.Method](ex, c)
}

func (ex *NativeExecutor) RegisterFunc(name string, f ExecFunc) {
	ex.execFuncs[name] = f
}

func (ex *NativeExecutor) HasFunc(name string) bool {
	_, ok := ex.execFuncs[name]
	return ok
}

// Construct runs the constructor of the contract kind.
func Construct(ctx *context.Context, code *payload.DeployCode) (*value.Value, error) {
	c, ok := getContract(code.Kind)
	if !ok {
		return nil, errors.ContractNotSupportedCodeType.Clone().SetData("kind", code.Kind)
	}

	return c.constructor(ctx, code)
}
