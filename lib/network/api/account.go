package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/network/api/resource"
	"boscoin.io/minidao/lib/network/httputils"
	"boscoin.io/minidao/lib/transaction"
)

func (api NetworkHandlerAPI) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["id"]

	if _, err := keypair.Parse(address); err != nil {
		httputils.WriteError(w, errors.BadPublicAddress.Clone().SetData("address", address))
		return
	}

	sequenceID, err := transaction.GetSequenceID(api.storage, address)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewAccount(address, sequenceID))
}
