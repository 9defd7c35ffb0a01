package payload

import (
	"boscoin.io/minidao/lib/common"
)

type ExecCode struct {
	ContractAddress string   `json:"contract_address"`
	Method          string   `json:"method"`
	Args            []string `json:"args"`
}

func (ec ExecCode) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(ec)
	return
}

func (ec *ExecCode) Deserialize(encoded []byte) (err error) {
	err = common.DecodeJSONValue(encoded, ec)
	return
}
