package transaction

import (
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stellar/go/keypair"

	"boscoin.io/minidao/lib/common"
	mkeypair "boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/transaction/operation"
)

const TypeTransaction = "transaction"

// Transaction carries one contract operation signed by `B.Source`; the
// verified source is the caller of the contract.
type Transaction struct {
	T string
	H Header
	B Body
}

type Header struct {
	Version   string `json:"version"`
	Created   string `json:"created"`
	Hash      string `json:"hash"`
	Signature string `json:"signature"`
}

type Body struct {
	Source     string              `json:"source"`
	SequenceID uint64              `json:"sequence_id"`
	Operation  operation.Operation `json:"operation"`
}

func (tb Body) MakeHash() []byte {
	return common.MustMakeObjectHash(tb)
}

func (tb Body) MakeHashString() string {
	return base58.Encode(tb.MakeHash())
}

func NewTransaction(source string, sequenceID uint64, op operation.Operation) Transaction {
	body := Body{
		Source:     source,
		SequenceID: sequenceID,
		Operation:  op,
	}

	return Transaction{
		T: TypeTransaction,
		H: Header{
			Version: common.TransactionVersionV1,
			Created: common.NowISO8601(),
			Hash:    body.MakeHashString(),
		},
		B: body,
	}
}

var WellFormedCheckerFuncs = []common.CheckerFunc{
	CheckType,
	CheckSource,
	CheckOperation,
	CheckHash,
	CheckVerifySignature,
}

// IsWellFormed checks the transaction without touching the storage.
func (tx Transaction) IsWellFormed(networkID []byte) error {
	return tx.IsWellFormedWithVerifier(mkeypair.NewVerifier(networkID, 1))
}

func (tx Transaction) IsWellFormedWithVerifier(verifier *mkeypair.Verifier) error {
	checker := &Checker{
		DefaultChecker: common.DefaultChecker{Funcs: WellFormedCheckerFuncs},
		Verifier:       verifier,
		Transaction:    tx,
	}

	return common.RunChecker(checker, common.DefaultDeferFunc)
}

func (tx Transaction) GetType() string {
	return tx.T
}

func (tx Transaction) GetHash() string {
	return tx.H.Hash
}

func (tx Transaction) Source() string {
	return tx.B.Source
}

func (tx Transaction) IsValidSequenceID(sequenceID uint64) bool {
	return tx.B.SequenceID == sequenceID
}

func (tx Transaction) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(tx)
	return
}

func (tx Transaction) String() string {
	encoded, _ := json.MarshalIndent(tx, "", "  ")
	return string(encoded)
}

func (tx *Transaction) Sign(kp keypair.KP, networkID []byte) {
	tx.H.Hash = tx.B.MakeHashString()
	signature, _ := mkeypair.MakeSignature(kp, networkID, tx.H.Hash)

	tx.H.Signature = base58.Encode(signature)
}

func NewTransactionFromJSON(b []byte) (tx Transaction, err error) {
	err = json.Unmarshal(b, &tx)
	return
}
