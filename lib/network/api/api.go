package api

import (
	"fmt"
	"net/http"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/contract/value"
	"boscoin.io/minidao/lib/network/httpcache"
	"boscoin.io/minidao/lib/storage"
	"boscoin.io/minidao/lib/transaction"
)

const APIVersionV1 = "v1"

// API Endpoint patterns
const (
	PostTransactionPattern        = "/transactions"
	GetAccountHandlerPattern      = "/accounts/{id}"
	GetDAOHandlerPattern          = "/daos/{id}"
	GetDAOVotersHandlerPattern    = "/daos/{id}/voters"
	GetDAOVoterHandlerPattern     = "/daos/{id}/voters/{voter}"
	GetDAOProposalsHandlerPattern = "/daos/{id}/proposals"
	GetDAOProposalHandlerPattern  = "/daos/{id}/proposals/{index}"
	GetDAOEventsHandlerPattern    = "/daos/{id}/events"
	GetAllDAOEventsHandlerPattern = "/events"
)

// TransactionSubmitter runs a signed transaction against the state and
// returns the result of the contract call.
type TransactionSubmitter interface {
	Submit(transaction.Transaction) (*value.Value, error)
}

type NetworkHandlerAPI struct {
	storage   *storage.LevelDBBackend
	submitter TransactionSubmitter
	cache     httpcache.Cache
	conf      common.Config
	urlPrefix string
	version   string
}

func NewNetworkHandlerAPI(st *storage.LevelDBBackend, submitter TransactionSubmitter, cache httpcache.Cache, conf common.Config, urlPrefix string) *NetworkHandlerAPI {
	if cache == nil {
		cache = httpcache.NewNopClient()
	}

	return &NetworkHandlerAPI{
		storage:   st,
		submitter: submitter,
		cache:     cache,
		conf:      conf,
		urlPrefix: urlPrefix,
		version:   APIVersionV1,
	}
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}

// Route is a handler with its pattern and method.
type Route struct {
	Pattern string
	Method  string
	Handler http.HandlerFunc
}

// Routes lists every endpoint of the API; the read handlers go through the
// response cache, the event streams and the submission do not.
func (api NetworkHandlerAPI) Routes() []Route {
	c := api.cache.WrapHandlerFunc

	return []Route{
		{api.HandlerURLPattern(PostTransactionPattern), "POST", api.PostTransactionHandler},
		{api.HandlerURLPattern(GetAccountHandlerPattern), "GET", c(api.GetAccountHandler)},
		{api.HandlerURLPattern(GetDAOVotersHandlerPattern), "GET", c(api.GetDAOVotersHandler)},
		{api.HandlerURLPattern(GetDAOVoterHandlerPattern), "GET", c(api.GetDAOVoterHandler)},
		{api.HandlerURLPattern(GetDAOProposalsHandlerPattern), "GET", c(api.GetDAOProposalsHandler)},
		{api.HandlerURLPattern(GetDAOProposalHandlerPattern), "GET", c(api.GetDAOProposalHandler)},
		{api.HandlerURLPattern(GetDAOEventsHandlerPattern), "GET", api.GetDAOEventsHandler},
		{api.HandlerURLPattern(GetAllDAOEventsHandlerPattern), "GET", api.GetAllDAOEventsHandler},
		{api.HandlerURLPattern(GetDAOHandlerPattern), "GET", c(api.GetDAOHandler)},
	}
}
