package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/contract/value"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/network/api/resource"
	"boscoin.io/minidao/lib/transaction"
)

func TestPostTransactionHandler(t *testing.T) {
	var received []transaction.Transaction
	submitter := submitterFunc(func(tx transaction.Transaction) (*value.Value, error) {
		received = append(received, tx)
		return value.ToValue(uint32(7))
	})

	ts, st := prepareAPIServer(submitter)
	defer st.Close()
	defer ts.Close()

	kp := keypair.Random()
	target := keypair.Random().Address()
	tx := transaction.TestMakeExecuteTransaction(networkID, kp, 0, target, "create_proposal")

	code, recv := postJSON(t, ts, resource.URLTransactions, tx.String())
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 1, len(received))
	require.Equal(t, tx.GetHash(), received[0].GetHash())

	require.Equal(t, tx.GetHash(), recv["hash"])
	require.Equal(t, kp.Address(), recv["source"])
	require.Equal(t, target, recv["contract"])
	require.Equal(t, "contract-execute", recv["operation"])
	require.Equal(t, map[string]interface{}{"type": "uint", "value": float64(7)}, recv["result"])
}

func TestPostTransactionHandlerError(t *testing.T) {
	submitter := submitterFunc(func(tx transaction.Transaction) (*value.Value, error) {
		return nil, errors.VoterNotRegistered
	})

	ts, st := prepareAPIServer(submitter)
	defer st.Close()
	defer ts.Close()

	{
		tx := transaction.TestMakeExecuteTransaction(networkID, keypair.Random(), 0, keypair.Random().Address(), "vote", "0")
		code, recv := postJSON(t, ts, resource.URLTransactions, tx.String())
		require.Equal(t, http.StatusForbidden, code)
		require.Equal(t, float64(errors.VoterNotRegistered.Code), recv["code"])
	}

	{
		code, recv := postJSON(t, ts, resource.URLTransactions, "{not json")
		require.Equal(t, http.StatusBadRequest, code)
		require.Equal(t, float64(errors.InvalidMessage.Code), recv["code"])
	}
}
