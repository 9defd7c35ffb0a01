package rpc

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/rpc"
	jsonrpc "github.com/gorilla/rpc/json"

	"boscoin.io/minidao/lib/contract/native"
	"boscoin.io/minidao/lib/storage"
)

const DefaultPath = "/jsonrpc"

// JSONRPCServer serves the read-only services over JSON-RPC 1.0:
// `Main` for health checks, `DAO` for the governance state and `DB` for the
// raw records.
type JSONRPCServer struct {
	path string
	st   *storage.LevelDBBackend
}

func NewJSONRPCServer(path string, st *storage.LevelDBBackend) *JSONRPCServer {
	if len(path) < 1 {
		path = DefaultPath
	}

	return &JSONRPCServer{
		path: path,
		st:   st,
	}
}

func (j *JSONRPCServer) Path() string {
	return j.path
}

type jsonrpcInternalServer struct {
	*rpc.Server
}

func (s *jsonrpcInternalServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set(
		"Access-Control-Allow-Headers",
		"Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization",
	)

	if r.Method == "OPTIONS" {
		return
	}

	s.Server.ServeHTTP(w, r)
}

// Handler returns the rpc server with every service registered.
func (j *JSONRPCServer) Handler() http.Handler {
	s := &jsonrpcInternalServer{Server: rpc.NewServer()}
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json")
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json;charset=UTF-8")

	s.RegisterService(&MainService{}, "Main")
	s.RegisterService(&DAOService{st: j.st}, "DAO")
	s.RegisterService(&DBService{st: j.st}, "DB")

	return s
}

// Ready returns a router which serves only the rpc path.
func (j *JSONRPCServer) Ready() *mux.Router {
	router := mux.NewRouter()
	router.Handle(j.path, j.Handler())

	return router
}

type EchoArgs string
type EchoResult string

type MainService struct{}

func (m *MainService) Echo(r *http.Request, args *EchoArgs, result *EchoResult) error {
	*result = EchoResult(string(*args))
	return nil
}

type ContractKindsArgs struct{}
type ContractKindsResult []string

// ContractKinds lists the registered native contract kinds.
func (m *MainService) ContractKinds(r *http.Request, args *ContractKindsArgs, result *ContractKindsResult) error {
	*result = ContractKindsResult(native.Kinds())
	return nil
}
