//
// NodeRunner bridges together the storage, the contract host and the HTTP
// surfaces. It is the only writer of the storage: every submitted
// transaction runs under one lock inside one storage transaction.
//
package runner

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/common/observer"
	"boscoin.io/minidao/lib/contract/value"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/metrics"
	"boscoin.io/minidao/lib/network/api"
	"boscoin.io/minidao/lib/network/httpcache"
	"boscoin.io/minidao/lib/network/rpc"
	"boscoin.io/minidao/lib/storage"
	"boscoin.io/minidao/lib/transaction"
	"boscoin.io/minidao/lib/transaction/operation"
)

const (
	URLPrefixAPI     = "/api"
	URLPathMetrics   = "/metrics"
	URLPathJSONRPC   = rpc.DefaultPath
	MethodDeployName = "deploy"
)

type NodeRunner struct {
	sync.Mutex

	conf     common.Config
	storage  *storage.LevelDBBackend
	verifier *keypair.Verifier
	log      logging.Logger

	// commits counts the committed transactions; the response cache uses
	// it as key prefix.
	commits uint64

	submitCheckerFuncs []common.CheckerFunc

	router *mux.Router
	server *http.Server
}

func NewNodeRunner(st *storage.LevelDBBackend, conf common.Config) (nr *NodeRunner, err error) {
	if len(conf.NetworkID) < 1 {
		err = errors.InvalidMessage.Clone().SetData("reason", "empty network id")
		return
	}

	nr = &NodeRunner{
		conf:               conf,
		storage:            st,
		verifier:           keypair.NewVerifier(conf.NetworkID, conf.KeypairCacheSize),
		log:                log.New(logging.Ctx{"network-id": string(conf.NetworkID)}),
		submitCheckerFuncs: DefaultSubmitCheckerFuncs,
	}

	return
}

func (nr *NodeRunner) Conf() common.Config {
	return nr.conf
}

func (nr *NodeRunner) Storage() *storage.LevelDBBackend {
	return nr.storage
}

func (nr *NodeRunner) Commits() uint64 {
	return atomic.LoadUint64(&nr.commits)
}

func (nr *NodeRunner) SetSubmitCheckerFuncs(f ...common.CheckerFunc) {
	nr.submitCheckerFuncs = f
}

func callMethod(tx transaction.Transaction) string {
	if body, ok := tx.B.Operation.B.(operation.ContractExecute); ok {
		return body.Method
	}
	return MethodDeployName
}

// Submit verifies the transaction and runs its operation with the source
// as the caller. Nothing is written unless every step succeeds; the events
// of the call are triggered after the commit.
func (nr *NodeRunner) Submit(tx transaction.Transaction) (*value.Value, error) {
	begin := time.Now()
	method := callMethod(tx)

	logger := nr.log.New(logging.Ctx{"transaction": tx.GetHash(), "source": tx.Source(), "method": method})

	if err := tx.IsWellFormedWithVerifier(nr.verifier); err != nil {
		logger.Debug("transaction is not well formed", "error", err)
		nr.recordError(method, err)
		return nil, err
	}

	nr.Lock()
	defer nr.Unlock()

	checker := &SubmitChecker{
		DefaultChecker: common.DefaultChecker{Funcs: nr.submitCheckerFuncs},
		NodeRunner:     nr,
		Transaction:    tx,
		Log:            logger,
	}

	if err := common.RunChecker(checker, common.DefaultDeferFunc); err != nil {
		checker.Discard()
		logger.Debug("transaction failed", "error", err)
		nr.recordError(method, err)
		return nil, err
	}

	atomic.AddUint64(&nr.commits, 1)
	metrics.Node.Commits.Add(1)

	for _, e := range checker.Events {
		nr.recordEvent(tx, e)
		observer.Trigger(e)
	}

	metrics.DAO.CallDurationSeconds.With("method", method).Observe(time.Since(begin).Seconds())
	logger.Debug("transaction committed", "result", checker.Result, "events", len(checker.Events))

	return checker.Result, nil
}

func (nr *NodeRunner) recordError(method string, err error) {
	var code uint
	if e, ok := err.(*errors.Error); ok {
		code = e.Code
	}
	metrics.DAO.AddCallError(method, code)
}

func (nr *NodeRunner) recordEvent(tx transaction.Transaction, e observer.Event) {
	switch e.Kind {
	case observer.EventDeployed:
		kind := ""
		if body, ok := tx.B.Operation.B.(operation.ContractDeploy); ok {
			kind = body.Kind
		}
		metrics.DAO.Deployed.With("kind", kind).Add(1)
	case observer.EventVoterRegistered:
		metrics.DAO.VotersRegistered.Add(1)
	case observer.EventVoterDeregistered:
		metrics.DAO.VotersDeregistered.Add(1)
	case observer.EventProposalCreated:
		metrics.DAO.ProposalsCreated.Add(1)
	case observer.EventProposalRemoved:
		metrics.DAO.ProposalsRemoved.Add(1)
	case observer.EventVoted:
		metrics.DAO.Votes.Add(1)
	}
}

// Ready builds the router: the API under `/api`, JSON-RPC under `/jsonrpc`
// and the prometheus metrics.
func (nr *NodeRunner) Ready() (*mux.Router, error) {
	cache, err := httpcache.NewCache(
		nr.conf,
		httpcache.WithKeyPrefix(func() string {
			return strconv.FormatUint(nr.Commits(), 10)
		}),
	)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.Use(RecoverMiddleware(nr.log))
	router.Use(RequestLogMiddleware(nr.log))

	apiRouter := router.PathPrefix(URLPrefixAPI).Subrouter()
	apiRouter.Use(MetricsMiddleware)
	if len(nr.conf.RateLimitAPI) > 0 {
		rateLimit, err := RateLimitMiddleware(nr.conf.RateLimitAPI)
		if err != nil {
			return nil, err
		}
		apiRouter.Use(rateLimit)
	}
	apiRouter.Use(ghandlers.CORS(
		ghandlers.AllowedOrigins([]string{"*"}),
		ghandlers.AllowedMethods([]string{"GET", "POST"}),
		ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"}),
	))

	apiHandler := api.NewNetworkHandlerAPI(nr.storage, nr, cache, nr.conf, "")
	for _, route := range apiHandler.Routes() {
		apiRouter.HandleFunc(route.Pattern, route.Handler).Methods(route.Method, "OPTIONS")
	}

	jsonrpcServer := rpc.NewJSONRPCServer(URLPathJSONRPC, nr.storage)
	jsonrpcHandler := jsonrpcServer.Handler()
	if nr.conf.RequestTimeout > 0 {
		jsonrpcHandler = http.TimeoutHandler(jsonrpcHandler, nr.conf.RequestTimeout, "request timeout")
	}
	router.Handle(jsonrpcServer.Path(), jsonrpcHandler)

	router.Handle(URLPathMetrics, promhttp.Handler())

	nr.router = router

	return router, nil
}

// Start serves until `Stop` is called.
func (nr *NodeRunner) Start(config ServerConfig) (err error) {
	if nr.router == nil {
		if _, err = nr.Ready(); err != nil {
			return
		}
	}

	server, err := NewHTTP2Server(config, nr.router)
	if err != nil {
		return
	}

	nr.Lock()
	nr.server = server
	nr.Unlock()

	nr.log.Info("starting node", "addr", config.Addr, "tls", config.IsTLS())

	if config.IsTLS() {
		err = server.ListenAndServeTLS(config.TLSCertFile, config.TLSKeyFile)
	} else {
		err = server.ListenAndServe()
	}

	if err == http.ErrServerClosed {
		return nil
	}

	return
}

func (nr *NodeRunner) Stop() {
	nr.Lock()
	server := nr.server
	nr.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), nr.conf.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		nr.log.Error("failed to shutdown server", "error", err)
		server.Close()
	}

	nr.log.Info("node stopped")
}
