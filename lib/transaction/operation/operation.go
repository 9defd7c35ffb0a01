package operation

import (
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/errors"
)

type OperationType string

const (
	TypeContractDeploy  OperationType = "contract-deploy"
	TypeContractExecute OperationType = "contract-execute"
)

func IsValidOperationType(oType string) bool {
	_, b := common.InStringArray([]string{
		string(TypeContractDeploy),
		string(TypeContractExecute),
	}, oType)
	return b
}

type Operation struct {
	H Header
	B Body
}

type Header struct {
	Type OperationType `json:"type"`
}

type Body interface {
	// IsWellFormed checks the operation by itself, without the storage.
	IsWellFormed([]byte) error
	Serialize() ([]byte, error)
	// ContractAddress is the contract the operation runs on.
	ContractAddress() string
}

func NewOperation(opb Body) (op Operation, err error) {
	var t OperationType
	switch opb.(type) {
	case ContractDeploy:
		t = TypeContractDeploy
	case ContractExecute:
		t = TypeContractExecute
	default:
		err = errors.InvalidOperation
		return
	}

	op = Operation{
		H: Header{Type: t},
		B: opb,
	}

	return
}

func (o Operation) MakeHash() []byte {
	return common.MustMakeObjectHash(o)
}

func (o Operation) MakeHashString() string {
	return base58.Encode(o.MakeHash())
}

func (o Operation) IsWellFormed(networkID []byte) (err error) {
	if o.B == nil {
		return errors.InvalidOperation
	}

	return o.B.IsWellFormed(networkID)
}

func (o Operation) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

func (o Operation) String() string {
	encoded, _ := json.MarshalIndent(o, "", "  ")

	return string(encoded)
}

type envelop struct {
	H Header
	B json.RawMessage
}

func (o *Operation) UnmarshalJSON(b []byte) (err error) {
	var oj envelop
	if err = json.Unmarshal(b, &oj); err != nil {
		return
	}

	o.H = oj.H

	switch oj.H.Type {
	case TypeContractDeploy:
		var body ContractDeploy
		if err = json.Unmarshal(oj.B, &body); err != nil {
			return
		}
		o.B = body
	case TypeContractExecute:
		var body ContractExecute
		if err = json.Unmarshal(oj.B, &body); err != nil {
			return
		}
		o.B = body
	default:
		return errors.InvalidOperation
	}

	return
}
