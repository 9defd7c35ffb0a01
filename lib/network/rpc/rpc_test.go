package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	rpcjson "github.com/gorilla/rpc/json"
	"github.com/stretchr/testify/require"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/contract"
	"boscoin.io/minidao/lib/contract/context"
	"boscoin.io/minidao/lib/contract/native/execfunc"
	"boscoin.io/minidao/lib/contract/payload"
	"boscoin.io/minidao/lib/dao"
	"boscoin.io/minidao/lib/storage"
)

type jsonrpcServerTestHelper struct {
	server *httptest.Server
	st     *storage.LevelDBBackend
	js     *JSONRPCServer
	t      *testing.T
}

func (jp *jsonrpcServerTestHelper) prepare() {
	jp.st = storage.NewTestStorage()
	jp.js = NewJSONRPCServer("", jp.st)
	jp.server = httptest.NewServer(jp.js.Ready())
}

func (jp *jsonrpcServerTestHelper) done() {
	jp.server.Close()
	jp.st.Close()
}

func (jp *jsonrpcServerTestHelper) call(method string, args interface{}, result interface{}) error {
	message, err := rpcjson.EncodeClientRequest(method, args)
	require.NoError(jp.t, err)

	req, err := http.NewRequest("POST", jp.server.URL+jp.js.Path(), bytes.NewBuffer(message))
	require.NoError(jp.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := jp.server.Client().Do(req)
	require.NoError(jp.t, err)
	defer resp.Body.Close()
	require.Equal(jp.t, 200, resp.StatusCode)

	return rpcjson.DecodeClientResponse(resp.Body, result)
}

func TestJSONRPCServerEcho(t *testing.T) {
	jp := jsonrpcServerTestHelper{t: t}
	jp.prepare()
	defer jp.done()

	token := common.NowISO8601()

	args := EchoArgs(token)
	var result EchoResult
	require.NoError(t, jp.call("Main.Echo", &args, &result))
	require.Equal(t, token, string(result))
}

func TestJSONRPCServerOptions(t *testing.T) {
	jp := jsonrpcServerTestHelper{t: t}
	jp.prepare()
	defer jp.done()

	req, err := http.NewRequest("OPTIONS", jp.server.URL+jp.js.Path(), nil)
	require.NoError(t, err)
	resp, err := jp.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestJSONRPCServerDAO(t *testing.T) {
	jp := jsonrpcServerTestHelper{t: t}
	jp.prepare()
	defer jp.done()

	d, err := dao.New(jp.st, keypair.Random().Address(), "rpc")
	require.NoError(t, err)

	voter := dao.NewTestIdentity()
	require.NoError(t, d.RegisterVoter(voter))
	for i := 0; i < 2; i++ {
		_, err = d.CreateProposal(voter)
		require.NoError(t, err)
	}
	require.NoError(t, d.Vote(voter, 1))
	require.NoError(t, d.RemoveProposal(voter, 0))

	{
		var result DAOExistsResult
		require.NoError(t, jp.call("DAO.Exists", &DAOArgs{Address: d.Address()}, &result))
		require.True(t, bool(result))

		require.NoError(t, jp.call("DAO.Exists", &DAOArgs{Address: "unknown"}, &result))
		require.False(t, bool(result))
	}

	{
		var result DAONameResult
		require.NoError(t, jp.call("DAO.Name", &DAOArgs{Address: d.Address()}, &result))
		require.Equal(t, "rpc", string(result))
	}

	{
		var result DAOHasVoterResult
		require.NoError(t, jp.call("DAO.HasVoter", &DAOVoterArgs{Address: d.Address(), Voter: voter.String()}, &result))
		require.True(t, bool(result))

		require.NoError(t, jp.call("DAO.HasVoter", &DAOVoterArgs{Address: d.Address(), Voter: "unknown"}, &result))
		require.False(t, bool(result))
	}

	{
		var result DAOCountResult
		require.NoError(t, jp.call("DAO.VoteCount", &DAOVoterArgs{Address: d.Address(), Voter: voter.String()}, &result))
		require.Equal(t, uint32(1), uint32(result))

		require.NoError(t, jp.call("DAO.ProposalCount", &DAOArgs{Address: d.Address()}, &result))
		require.Equal(t, uint32(2), uint32(result))
	}

	{
		var result DAOProposalResult
		require.NoError(t, jp.call("DAO.GetProposal", &DAOProposalArgs{Address: d.Address(), Index: 1}, &result))
		require.NotNil(t, result.Proposal)
		require.Equal(t, uint32(1), result.Proposal.VoteCount)

		result = DAOProposalResult{}
		require.NoError(t, jp.call("DAO.GetProposal", &DAOProposalArgs{Address: d.Address(), Index: 0}, &result))
		require.Nil(t, result.Proposal)

		require.NoError(t, jp.call("DAO.GetProposal", &DAOProposalArgs{Address: d.Address(), Index: 9}, &result))
		require.Nil(t, result.Proposal)
	}

	{ // unknown dao
		var result DAONameResult
		err := jp.call("DAO.Name", &DAOArgs{Address: keypair.Random().Address()}, &result)
		require.Error(t, err)
		require.Contains(t, err.Error(), "contract not found")
	}
}

func TestJSONRPCServerDBHas(t *testing.T) {
	jp := jsonrpcServerTestHelper{t: t}
	jp.prepare()
	defer jp.done()

	key := "showme"
	require.NoError(t, jp.st.New(key, key))

	var result DBHasResult

	args := DBHasArgs(key)
	require.NoError(t, jp.call("DB.Has", &args, &result))
	require.True(t, bool(result))

	args = DBHasArgs(key + "hahaha")
	require.NoError(t, jp.call("DB.Has", &args, &result))
	require.False(t, bool(result))
}

func TestJSONRPCServerDBGet(t *testing.T) {
	jp := jsonrpcServerTestHelper{t: t}
	jp.prepare()
	defer jp.done()

	key := "showme"
	require.NoError(t, jp.st.New(key, key))

	args := DBGetArgs(key)
	var result DBGetResult
	require.NoError(t, jp.call("DB.Get", &args, &result))
	require.Equal(t, key, string(result.Key))

	var r string
	require.NoError(t, json.Unmarshal(result.Value, &r))
	require.Equal(t, key, r)

	args = DBGetArgs("missing")
	require.Error(t, jp.call("DB.Get", &args, &result))
}

func TestJSONRPCServerDBGetIterator(t *testing.T) {
	jp := jsonrpcServerTestHelper{t: t}
	jp.prepare()
	defer jp.done()

	expectedPrefix := dao.GetProposalKeyPrefix("A")
	expected := []string{}
	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("%s%03d", expectedPrefix, i)
		require.NoError(t, jp.st.New(key, key))
		expected = append(expected, key)
	}

	for i := 0; i < 3; i++ { // another prefix
		require.NoError(t, jp.st.New(fmt.Sprintf("%s%03d", dao.GetProposalKeyPrefix("B"), i), i))
	}

	{
		args := DBGetIteratorArgs{
			Prefix:  expectedPrefix,
			Options: GetIteratorOptions{Limit: uint64(len(expected) + 100)},
		}
		var result DBGetIteratorResult
		require.NoError(t, jp.call("DB.GetIterator", &args, &result))

		require.Equal(t, len(expected), len(result.Items))
		for i, item := range result.Items {
			require.Equal(t, expected[i], string(item.Key))
		}
		require.Empty(t, result.Next)
	}

	{
		args := DBGetIteratorArgs{
			Prefix:  expectedPrefix,
			Options: GetIteratorOptions{Reverse: true, Limit: 3},
		}
		var result DBGetIteratorResult
		require.NoError(t, jp.call("DB.GetIterator", &args, &result))

		require.Equal(t, uint64(3), result.Limit)
		require.Equal(t, 3, len(result.Items))
		for i, item := range result.Items {
			require.Equal(t, expected[len(expected)-i-1], string(item.Key))
		}
		require.Equal(t, expected[len(expected)-4], string(result.Next))

		// the next page starts at the returned cursor
		args.Options.Cursor = result.Next
		var page DBGetIteratorResult
		require.NoError(t, jp.call("DB.GetIterator", &args, &page))
		require.Equal(t, expected[len(expected)-4], string(page.Items[0].Key))
	}
}

func TestJSONRPCServerContractKinds(t *testing.T) {
	jp := jsonrpcServerTestHelper{t: t}
	jp.prepare()
	defer jp.done()

	var result ContractKindsResult
	require.NoError(t, jp.call("Main.ContractKinds", &ContractKindsArgs{}, &result))
	require.Contains(t, []string(result), execfunc.DAOKind)
}

func TestJSONRPCServerDAOQuery(t *testing.T) {
	jp := jsonrpcServerTestHelper{t: t}
	jp.prepare()
	defer jp.done()

	voter := dao.NewTestIdentity()
	address := keypair.Random().Address()

	ctx := context.NewContext(voter, jp.st)
	_, err := contract.Deploy(ctx, &payload.DeployCode{
		ContractAddress: address,
		Type:            payload.Native,
		Kind:            execfunc.DAOKind,
		Code:            []byte("query"),
	})
	require.NoError(t, err)

	for _, method := range []string{execfunc.MethodRegisterVoter, execfunc.MethodCreateProposal} {
		_, err = contract.Execute(ctx, &payload.ExecCode{ContractAddress: address, Method: method})
		require.NoError(t, err)
	}

	{
		var result DAOQueryResult
		args := &DAOQueryArgs{Address: address, Method: execfunc.MethodGetName}
		require.NoError(t, jp.call("DAO.Query", args, &result))
		require.True(t, result.Value.EqualNative("query"))
	}

	{
		var result DAOQueryResult
		args := &DAOQueryArgs{Address: address, Method: execfunc.MethodHasVoter, Args: []string{voter.String()}}
		require.NoError(t, jp.call("DAO.Query", args, &result))
		require.True(t, result.Value.EqualNative(true))
	}

	{
		var result DAOQueryResult
		args := &DAOQueryArgs{Address: address, Method: execfunc.MethodProposalCount}
		require.NoError(t, jp.call("DAO.Query", args, &result))
		require.True(t, result.Value.EqualNative(uint32(1)))
	}

	{ // state changing methods are refused
		var result DAOQueryResult
		args := &DAOQueryArgs{Address: address, Method: execfunc.MethodCreateProposal}
		err := jp.call("DAO.Query", args, &result)
		require.Error(t, err)
		require.Contains(t, err.Error(), "method")

		d, err := dao.Load(jp.st, address)
		require.NoError(t, err)
		count, err := d.ProposalCount()
		require.NoError(t, err)
		require.Equal(t, uint32(1), count)
	}
}
