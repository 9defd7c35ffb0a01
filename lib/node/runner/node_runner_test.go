package runner

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/require"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/observer"
	"boscoin.io/minidao/lib/contract/native/execfunc"
	"boscoin.io/minidao/lib/dao"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/storage"
	"boscoin.io/minidao/lib/transaction"
)

var networkID = []byte("minidao-runner-test")

func createTestNodeRunner(t *testing.T) *NodeRunner {
	nr, err := NewNodeRunner(storage.NewTestStorage(), common.NewConfig(networkID))
	require.NoError(t, err)

	return nr
}

type testAccount struct {
	kp         *keypair.Full
	sequenceID uint64
}

func newTestAccount() *testAccount {
	kp, _ := keypair.Random()
	return &testAccount{kp: kp}
}

func (a *testAccount) deploy(t *testing.T, nr *NodeRunner, name string) string {
	address, tx := transaction.TestMakeDeployTransaction(networkID, a.kp, a.sequenceID, execfunc.DAOKind, name)
	_, err := nr.Submit(tx)
	require.NoError(t, err)
	a.sequenceID++

	return address
}

func (a *testAccount) call(nr *NodeRunner, address, method string, args ...string) (interface{}, error) {
	tx := transaction.TestMakeExecuteTransaction(networkID, a.kp, a.sequenceID, address, method, args...)
	ret, err := nr.Submit(tx)
	if err != nil {
		return nil, err
	}
	a.sequenceID++

	return ret.Interface(), nil
}

func TestNodeRunnerEmptyNetworkID(t *testing.T) {
	_, err := NewNodeRunner(storage.NewTestStorage(), common.NewConfig(nil))
	require.Error(t, err)
}

func TestNodeRunnerSubmit(t *testing.T) {
	nr := createTestNodeRunner(t)
	defer nr.Storage().Close()

	alice := newTestAccount()
	bob := newTestAccount()

	address := alice.deploy(t, nr, "club")
	require.Equal(t, uint64(1), nr.Commits())

	_, err := alice.call(nr, address, execfunc.MethodRegisterVoter)
	require.NoError(t, err)
	_, err = bob.call(nr, address, execfunc.MethodRegisterVoter)
	require.NoError(t, err)

	ret, err := alice.call(nr, address, execfunc.MethodCreateProposal)
	require.NoError(t, err)
	require.Equal(t, uint64(0), ret)

	_, err = bob.call(nr, address, execfunc.MethodVote, "0")
	require.NoError(t, err)
	_, err = bob.call(nr, address, execfunc.MethodVote, "0")
	require.NoError(t, err)

	ret, err = alice.call(nr, address, execfunc.MethodVoteCount, bob.kp.Address())
	require.NoError(t, err)
	require.Equal(t, uint64(2), ret)

	ret, err = alice.call(nr, address, execfunc.MethodHasVoter, bob.kp.Address())
	require.NoError(t, err)
	require.Equal(t, true, ret)

	d, err := dao.Load(nr.Storage(), address)
	require.NoError(t, err)
	require.Equal(t, "club", d.Name())

	proposal, err := d.GetProposal(0)
	require.NoError(t, err)
	require.Equal(t, uint32(2), proposal.VoteCount)

	sequenceID, err := transaction.GetSequenceID(nr.Storage(), bob.kp.Address())
	require.NoError(t, err)
	require.Equal(t, bob.sequenceID, sequenceID)
}

func TestNodeRunnerSubmitNotRegistered(t *testing.T) {
	nr := createTestNodeRunner(t)
	defer nr.Storage().Close()

	alice := newTestAccount()
	address := alice.deploy(t, nr, "club")
	commits := nr.Commits()

	_, err := alice.call(nr, address, execfunc.MethodCreateProposal)
	require.True(t, errors.VoterNotRegistered.Is(err))
	require.Equal(t, commits, nr.Commits())

	// the failed call does not consume the sequence id
	sequenceID, err := transaction.GetSequenceID(nr.Storage(), alice.kp.Address())
	require.NoError(t, err)
	require.Equal(t, alice.sequenceID, sequenceID)

	d, err := dao.Load(nr.Storage(), address)
	require.NoError(t, err)
	count, err := d.ProposalCount()
	require.NoError(t, err)
	require.Equal(t, uint32(0), count)
}

func TestNodeRunnerSubmitReplay(t *testing.T) {
	nr := createTestNodeRunner(t)
	defer nr.Storage().Close()

	alice := newTestAccount()
	address := alice.deploy(t, nr, "club")

	tx := transaction.TestMakeExecuteTransaction(networkID, alice.kp, alice.sequenceID, address, execfunc.MethodRegisterVoter)
	_, err := nr.Submit(tx)
	require.NoError(t, err)

	_, err = nr.Submit(tx)
	require.True(t, errors.InvalidSequenceID.Is(err))

	// the voter is still registered only once
	d, err := dao.Load(nr.Storage(), address)
	require.NoError(t, err)
	ok, err := d.HasVoter(dao.Identity(alice.kp.Address()))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestNodeRunnerSubmitWrongNetwork(t *testing.T) {
	nr := createTestNodeRunner(t)
	defer nr.Storage().Close()

	kp, _ := keypair.Random()
	_, tx := transaction.TestMakeDeployTransaction([]byte("another network"), kp, 0, execfunc.DAOKind, "club")

	_, err := nr.Submit(tx)
	require.True(t, errors.InvalidSignature.Is(err))
	require.Equal(t, uint64(0), nr.Commits())
}

func TestNodeRunnerSubmitEvents(t *testing.T) {
	nr := createTestNodeRunner(t)
	defer nr.Storage().Close()

	alice := newTestAccount()
	address := alice.deploy(t, nr, "club")

	var lock sync.Mutex
	var received []observer.Event
	listener := func(args ...interface{}) {
		lock.Lock()
		defer lock.Unlock()
		received = append(received, args[0].(observer.Event))
	}
	observer.DAOObserver.On(observer.Topic(address), listener)
	defer observer.DAOObserver.Off(observer.Topic(address), listener)

	_, err := alice.call(nr, address, execfunc.MethodRegisterVoter)
	require.NoError(t, err)
	_, err = alice.call(nr, address, execfunc.MethodCreateProposal)
	require.NoError(t, err)

	// failed calls emit nothing
	_, err = alice.call(nr, address, execfunc.MethodRemoveProposal, "9")
	require.Error(t, err)

	lock.Lock()
	defer lock.Unlock()

	require.Equal(t, 2, len(received))
	require.Equal(t, observer.EventVoterRegistered, received[0].Kind)
	require.Equal(t, observer.EventProposalCreated, received[1].Kind)
	require.Equal(t, alice.kp.Address(), received[1].Caller)
	require.Equal(t, uint32(0), *received[1].Index)
}

func TestNodeRunnerAPI(t *testing.T) {
	nr := createTestNodeRunner(t)
	defer nr.Storage().Close()

	router, err := nr.Ready()
	require.NoError(t, err)

	ts := httptest.NewServer(router)
	defer ts.Close()

	alice := newTestAccount()
	_, tx := transaction.TestMakeDeployTransaction(networkID, alice.kp, 0, execfunc.DAOKind, "club")
	address := tx.B.Operation.B.ContractAddress()

	{ // submit through the api
		resp, err := ts.Client().Post(ts.URL+"/api/v1/transactions", "application/json", strings.NewReader(tx.String()))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	}

	{
		resp, err := ts.Client().Get(ts.URL + "/api/v1/daos/" + address)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		b, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		recv := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(b, &recv))
		require.Equal(t, "club", recv["name"])
	}

	{ // replayed transaction
		resp, err := ts.Client().Post(ts.URL+"/api/v1/transactions", "application/json", strings.NewReader(tx.String()))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	}

	{
		resp, err := ts.Client().Get(ts.URL + URLPathMetrics)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
