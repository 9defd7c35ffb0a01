package api

import (
	"io/ioutil"
	"net/http"

	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/network/api/resource"
	"boscoin.io/minidao/lib/network/httputils"
	"boscoin.io/minidao/lib/transaction"
)

// MaxTransactionBodySize limits the body of `POST /transactions`.
const MaxTransactionBodySize int64 = 1 << 20

func (api NetworkHandlerAPI) PostTransactionHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, MaxTransactionBodySize))
	if err != nil {
		httputils.WriteError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	tx, err := transaction.NewTransactionFromJSON(body)
	if err != nil {
		httputils.WriteError(w, errors.InvalidMessage.Clone().SetData("error", err.Error()))
		return
	}

	result, err := api.submitter.Submit(tx)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewResult(tx, result))
}
