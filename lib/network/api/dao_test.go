package api

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/dao"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/network/api/resource"
)

func daoURL(pattern, address string) string {
	return strings.Replace(pattern, "{id}", address, -1)
}

func TestGetDAOHandler(t *testing.T) {
	ts, st := prepareAPIServer(nil)
	defer st.Close()
	defer ts.Close()

	d, _ := prepareDAO(t, st, "showme", 1, 2)

	code, recv := getJSON(t, ts, daoURL(resource.URLDAOs, d.Address()))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, d.Address(), recv["address"])
	require.Equal(t, "showme", recv["name"])
	require.Equal(t, float64(2), recv["proposal_count"])
	require.Equal(t, daoURL(resource.URLDAOs, d.Address()), linkHref(recv, "self"))
	require.Equal(t, daoURL(resource.URLDAOEvents, d.Address()), linkHref(recv, "events"))
}

func TestGetDAOHandlerNotFound(t *testing.T) {
	ts, st := prepareAPIServer(nil)
	defer st.Close()
	defer ts.Close()

	code, recv := getJSON(t, ts, daoURL(resource.URLDAOs, keypair.Random().Address()))
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, float64(errors.ContractNotFound.Code), recv["code"])
}

func TestGetDAOVoterHandler(t *testing.T) {
	ts, st := prepareAPIServer(nil)
	defer st.Close()
	defer ts.Close()

	d, ids := prepareDAO(t, st, "", 2, 1)
	require.NoError(t, d.Vote(ids[1], 0))
	require.NoError(t, d.Vote(ids[1], 0))

	voterURL := func(id dao.Identity) string {
		return strings.Replace(daoURL(resource.URLDAOVoter, d.Address()), "{voter}", id.String(), -1)
	}

	{
		code, recv := getJSON(t, ts, voterURL(ids[1]))
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, true, recv["registered"])
		require.Equal(t, float64(2), recv["vote_count"])
		require.Equal(t, voterURL(ids[1]), linkHref(recv, "self"))
	}

	{
		// unknown voters are not an error
		unknown := dao.NewTestIdentity()
		code, recv := getJSON(t, ts, voterURL(unknown))
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, false, recv["registered"])
		require.Equal(t, float64(0), recv["vote_count"])
	}
}

func TestGetDAOVotersHandler(t *testing.T) {
	ts, st := prepareAPIServer(nil)
	defer st.Close()
	defer ts.Close()

	d, ids := prepareDAO(t, st, "", 5, 0)

	var expected []string
	for _, id := range ids {
		expected = append(expected, id.String())
	}
	sort.Strings(expected)

	{
		code, recv := getJSON(t, ts, daoURL(resource.URLDAOVoters, d.Address()))
		require.Equal(t, http.StatusOK, code)

		rs := records(recv)
		require.Equal(t, 5, len(rs))
		for i, r := range rs {
			require.Equal(t, expected[i], r.(map[string]interface{})["id"])
		}
		require.Equal(t, "", linkHref(recv, "next"))
	}

	{ // page through with limit=2
		var got []string
		url := daoURL(resource.URLDAOVoters, d.Address()) + "?limit=2"
		for pages := 0; url != ""; pages++ {
			require.True(t, pages < 4)

			code, recv := getJSON(t, ts, url)
			require.Equal(t, http.StatusOK, code)
			for _, r := range records(recv) {
				got = append(got, r.(map[string]interface{})["id"].(string))
			}
			url = linkHref(recv, "next")
		}
		require.Equal(t, expected, got)
	}

	{ // reverse
		code, recv := getJSON(t, ts, daoURL(resource.URLDAOVoters, d.Address())+"?reverse=true&limit=1")
		require.Equal(t, http.StatusOK, code)
		rs := records(recv)
		require.Equal(t, 1, len(rs))
		require.Equal(t, expected[4], rs[0].(map[string]interface{})["id"])
		require.Contains(t, linkHref(recv, "next"), "cursor="+expected[3])
	}
}

func TestGetDAOVotersHandlerEmpty(t *testing.T) {
	ts, st := prepareAPIServer(nil)
	defer st.Close()
	defer ts.Close()

	d, _ := prepareDAO(t, st, "", 0, 0)

	code, recv := getJSON(t, ts, daoURL(resource.URLDAOVoters, d.Address()))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 0, len(records(recv)))
}

func TestGetDAOProposalHandler(t *testing.T) {
	ts, st := prepareAPIServer(nil)
	defer st.Close()
	defer ts.Close()

	d, ids := prepareDAO(t, st, "", 1, 2)
	require.NoError(t, d.Vote(ids[0], 1))
	require.NoError(t, d.RemoveProposal(ids[0], 0))

	proposalURL := func(index string) string {
		return strings.Replace(daoURL(resource.URLDAOProposal, d.Address()), "{index}", index, -1)
	}

	{
		code, recv := getJSON(t, ts, proposalURL("1"))
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, float64(1), recv["index"])
		require.Equal(t, float64(1), recv["vote_count"])
		require.Equal(t, false, recv["removed"])
	}

	{ // removed
		code, recv := getJSON(t, ts, proposalURL("0"))
		require.Equal(t, http.StatusNotFound, code)
		require.Equal(t, float64(errors.ProposalDoesNotExist.Code), recv["code"])
	}

	{ // out of range
		code, recv := getJSON(t, ts, proposalURL("2"))
		require.Equal(t, http.StatusNotFound, code)
		require.Equal(t, float64(errors.ProposalDoesNotExist.Code), recv["code"])
	}

	{ // not an index
		code, recv := getJSON(t, ts, proposalURL("-1"))
		require.Equal(t, http.StatusBadRequest, code)
		require.Equal(t, float64(errors.BadRequestParameter.Code), recv["code"])
	}
}

func TestGetDAOProposalsHandler(t *testing.T) {
	ts, st := prepareAPIServer(nil)
	defer st.Close()
	defer ts.Close()

	d, ids := prepareDAO(t, st, "", 1, 5)
	require.NoError(t, d.RemoveProposal(ids[0], 1))
	require.NoError(t, d.Vote(ids[0], 3))

	listURL := daoURL(resource.URLDAOProposals, d.Address())

	indexes := func(recv map[string]interface{}) (indexes []int) {
		for _, r := range records(recv) {
			indexes = append(indexes, int(r.(map[string]interface{})["index"].(float64)))
		}
		return
	}

	{
		code, recv := getJSON(t, ts, listURL)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, []int{0, 1, 2, 3, 4}, indexes(recv))

		rs := records(recv)
		require.Equal(t, true, rs[1].(map[string]interface{})["removed"])
		require.NotContains(t, rs[1].(map[string]interface{}), "vote_count")
		require.Equal(t, float64(1), rs[3].(map[string]interface{})["vote_count"])
	}

	{
		code, recv := getJSON(t, ts, listURL+"?limit=2&cursor=1")
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, []int{1, 2}, indexes(recv))
		require.Contains(t, linkHref(recv, "next"), "cursor=3")

		code, recv = getJSON(t, ts, linkHref(recv, "next"))
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, []int{3, 4}, indexes(recv))
		require.Equal(t, "", linkHref(recv, "next"))
	}

	{
		code, recv := getJSON(t, ts, listURL+"?reverse=true&limit=3")
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, []int{4, 3, 2}, indexes(recv))

		code, recv = getJSON(t, ts, linkHref(recv, "next"))
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, []int{1, 0}, indexes(recv))
	}

	{
		code, recv := getJSON(t, ts, fmt.Sprintf("%s?reverse=true&cursor=%d", listURL, 100))
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, []int{4, 3, 2, 1, 0}, indexes(recv))
	}

	{
		code, recv := getJSON(t, ts, listURL+"?cursor=100")
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, 0, len(records(recv)))
	}

	{
		code, _ := getJSON(t, ts, listURL+"?cursor=abc")
		require.Equal(t, http.StatusBadRequest, code)

		code, _ = getJSON(t, ts, listURL+"?limit=0")
		require.Equal(t, http.StatusBadRequest, code)
	}
}
