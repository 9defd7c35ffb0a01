package api

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/contract/value"
	"boscoin.io/minidao/lib/dao"
	"boscoin.io/minidao/lib/storage"
	"boscoin.io/minidao/lib/transaction"
)

var networkID = []byte("minidao-api-test")

type submitterFunc func(transaction.Transaction) (*value.Value, error)

func (f submitterFunc) Submit(tx transaction.Transaction) (*value.Value, error) {
	return f(tx)
}

func prepareAPIServer(submitter TransactionSubmitter) (*httptest.Server, *storage.LevelDBBackend) {
	st := storage.NewTestStorage()
	if submitter == nil {
		submitter = submitterFunc(func(transaction.Transaction) (*value.Value, error) {
			return value.NilValue, nil
		})
	}

	apiHandler := NewNetworkHandlerAPI(st, submitter, nil, common.NewConfig(networkID), "/api")

	router := mux.NewRouter()
	for _, route := range apiHandler.Routes() {
		router.HandleFunc(route.Pattern, route.Handler).Methods(route.Method)
	}

	return httptest.NewServer(router), st
}

// prepareDAO deploys a DAO with `voters` registered voters and
// `proposals` proposals created by the first voter.
func prepareDAO(t *testing.T, st *storage.LevelDBBackend, name string, voters, proposals int) (*dao.DAO, []dao.Identity) {
	d, err := dao.New(st, keypair.Random().Address(), name)
	require.NoError(t, err)

	var ids []dao.Identity
	for i := 0; i < voters; i++ {
		id := dao.NewTestIdentity()
		require.NoError(t, d.RegisterVoter(id))
		ids = append(ids, id)
	}

	for i := 0; i < proposals; i++ {
		_, err := d.CreateProposal(ids[0])
		require.NoError(t, err)
	}

	return d, ids
}

func request(ts *httptest.Server, url string, streaming bool) io.ReadCloser {
	req, err := http.NewRequest("GET", ts.URL+url, nil)
	if err != nil {
		panic(err)
	}
	if streaming {
		req.Header.Set("Accept", EventStreamContentType)
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		panic(err)
	}
	return resp.Body
}

func getJSON(t *testing.T, ts *httptest.Server, url string) (int, map[string]interface{}) {
	resp, err := ts.Client().Get(ts.URL + url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	recv := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(body, &recv), string(body))

	return resp.StatusCode, recv
}

func postJSON(t *testing.T, ts *httptest.Server, url, body string) (int, map[string]interface{}) {
	resp, err := ts.Client().Post(ts.URL+url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	recv := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(b, &recv), string(b))

	return resp.StatusCode, recv
}

func records(recv map[string]interface{}) []interface{} {
	embedded, ok := recv["_embedded"].(map[string]interface{})
	if !ok {
		return nil
	}
	rs, _ := embedded["records"].([]interface{})
	return rs
}

func linkHref(recv map[string]interface{}, rel string) string {
	links := recv["_links"].(map[string]interface{})
	link, ok := links[rel]
	if !ok {
		return ""
	}
	return link.(map[string]interface{})["href"].(string)
}
