package operation

import (
	"encoding/json"

	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/contract/payload"
	"boscoin.io/minidao/lib/errors"
)

// ContractDeploy creates a contract at `Target`; the target must be a new
// public address.
type ContractDeploy struct {
	Target   string `json:"target"`
	CodeType uint   `json:"code_type"`
	Kind     string `json:"kind"`
	Code     string `json:"code"`
}

func NewContractDeploy(target string, codeType payload.CodeType, kind, code string) ContractDeploy {
	return ContractDeploy{
		Target:   target,
		CodeType: uint(codeType),
		Kind:     kind,
		Code:     code,
	}
}

func (o ContractDeploy) IsWellFormed([]byte) (err error) {
	if _, err = keypair.Parse(o.Target); err != nil {
		return errors.BadPublicAddress
	}

	if len(o.Kind) < 1 {
		return errors.InvalidOperation.Clone().SetData("reason", "empty kind")
	}

	return
}

func (o ContractDeploy) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(o)
	return
}

func (o ContractDeploy) ContractAddress() string {
	return o.Target
}

func (o ContractDeploy) DeployCode() *payload.DeployCode {
	return &payload.DeployCode{
		ContractAddress: o.Target,
		Type:            payload.CodeType(o.CodeType),
		Kind:            o.Kind,
		Code:            []byte(o.Code),
	}
}

type ContractExecute struct {
	Target string   `json:"target"`
	Method string   `json:"method"`
	Args   []string `json:"args"`
}

func NewContractExecute(target, method string, args ...string) ContractExecute {
	if args == nil {
		args = []string{}
	}

	return ContractExecute{
		Target: target,
		Method: method,
		Args:   args,
	}
}

func (o ContractExecute) IsWellFormed([]byte) (err error) {
	if _, err = keypair.Parse(o.Target); err != nil {
		return errors.BadPublicAddress
	}

	if len(o.Method) < 1 {
		return errors.InvalidOperation.Clone().SetData("reason", "empty method")
	}

	return
}

func (o ContractExecute) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(o)
	return
}

func (o ContractExecute) ContractAddress() string {
	return o.Target
}

func (o ContractExecute) ExecCode() *payload.ExecCode {
	return &payload.ExecCode{
		ContractAddress: o.Target,
		Method:          o.Method,
		Args:            o.Args,
	}
}
