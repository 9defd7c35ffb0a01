package contract

import (
	"boscoin.io/minidao/lib/contract/context"
	"boscoin.io/minidao/lib/contract/native"
	"boscoin.io/minidao/lib/contract/payload"
	"boscoin.io/minidao/lib/contract/value"
	"boscoin.io/minidao/lib/errors"
)

type Deployer interface {
	Deploy(*payload.DeployCode) (*value.Value, error)
}

type NativeDeployer struct {
	ctx *context.Context
}

func (d *NativeDeployer) Deploy(code *payload.DeployCode) (*value.Value, error) {
	if !native.HasContract(code.Kind) {
		return nil, errors.ContractNotSupportedCodeType.Clone().SetData("kind", code.Kind)
	}

	if err := d.ctx.PutDeployCode(code); err != nil {
		return nil, err
	}

	return native.Construct(d.ctx, code)
}

func NewDeployer(ctx *context.Context, codeType payload.CodeType) (Deployer, error) {
	switch codeType {
	case payload.Native:
		return &NativeDeployer{ctx: ctx}, nil
	default:
		return nil, errors.ContractNotSupportedCodeType.Clone().SetData("type", codeType.String())
	}
}

// Deploy stores the deploy code and runs the constructor of the contract.
func Deploy(ctx *context.Context, code *payload.DeployCode) (*value.Value, error) {
	deployer, err := NewDeployer(ctx, code.Type)
	if err != nil {
		return nil, err
	}

	ret, err := deployer.Deploy(code)
	if err != nil {
		log.Debug("failed to deploy", "contract", code.ContractAddress, "kind", code.Kind, "error", err)
		return nil, err
	}

	log.Debug("deployed", "contract", code.ContractAddress, "kind", code.Kind, "sender", ctx.SenderAddress())

	return ret, nil
}
