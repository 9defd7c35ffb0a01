package payload

import (
	"boscoin.io/minidao/lib/common"
)

type CodeType int

const (
	Native CodeType = iota
	JavaScript
	WASM
)

func (t CodeType) String() string {
	switch t {
	case Native:
		return "native"
	case JavaScript:
		return "javascript"
	case WASM:
		return "wasm"
	default:
		return "unknown"
	}
}

const DeployCodePrefix = "contract-code-"

func GetDeployCodeKey(address string) string {
	return DeployCodePrefix + address
}

// DeployCode creates a contract at `ContractAddress`. For `Native` contracts
// `Kind` names the registered native contract and `Code` is handed to its
// constructor.
type DeployCode struct {
	ContractAddress string   `json:"contract_address"`
	Type            CodeType `json:"type"`
	Kind            string   `json:"kind"`
	Code            []byte   `json:"code"`
}

func (dc DeployCode) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(dc)
	return
}

func (dc *DeployCode) Deserialize(encoded []byte) (err error) {
	err = common.DecodeJSONValue(encoded, dc)
	return
}
