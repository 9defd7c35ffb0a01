package contract

import (
	"boscoin.io/minidao/lib/contract/context"
	"boscoin.io/minidao/lib/contract/native"
	_ "boscoin.io/minidao/lib/contract/native/execfunc"
	"boscoin.io/minidao/lib/contract/payload"
	"boscoin.io/minidao/lib/contract/value"
	"boscoin.io/minidao/lib/errors"
)

type Executor interface {
	Execute(*payload.ExecCode) (*value.Value, error)
}

func NewExecutor(ctx *context.Context, execCode *payload.ExecCode) (Executor, error) {
	deployCode, err := ctx.GetDeployCode(execCode.ContractAddress)
	if err != nil {
		return nil, err
	}

	switch deployCode.Type {
	case payload.Native:
		return native.NewNativeExecutor(ctx, deployCode), nil
	default:
		return nil, errors.ContractNotSupportedCodeType.Clone().SetData("type", deployCode.Type.String())
	}
}

func Execute(ctx *context.Context, execCode *payload.ExecCode) (*value.Value, error) {
	ex, err := NewExecutor(ctx, execCode)
	if err != nil {
		return nil, err
	}

	ret, err := ex.Execute(execCode)
	log.Debug(
		"executed",
		"contract", execCode.ContractAddress,
		"method", execCode.Method,
		"caller", ctx.SenderAddress(),
		"error", err,
	)

	return ret, err
}
