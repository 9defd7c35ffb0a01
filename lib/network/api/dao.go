package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/dao"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/network/api/resource"
	"boscoin.io/minidao/lib/network/httputils"
)

func (api NetworkHandlerAPI) maxLimit() uint64 {
	if api.conf.MaxLimitListOptions > 0 {
		return api.conf.MaxLimitListOptions
	}
	return common.DefaultMaxLimitListOptions
}

func (api NetworkHandlerAPI) loadDAO(r *http.Request) (*dao.DAO, error) {
	return dao.Load(api.storage, mux.Vars(r)["id"])
}

func parseIndex(s string) (uint32, error) {
	index, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.BadRequestParameter.Clone().SetData("index", s)
	}
	return uint32(index), nil
}

func (api NetworkHandlerAPI) GetDAOHandler(w http.ResponseWriter, r *http.Request) {
	d, err := api.loadDAO(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	count, err := d.ProposalCount()
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewDAO(d.Address(), d.Name(), count))
}

func (api NetworkHandlerAPI) GetDAOVoterHandler(w http.ResponseWriter, r *http.Request) {
	d, err := api.loadDAO(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	id := dao.Identity(mux.Vars(r)["voter"])

	readFunc := func() (payload interface{}, err error) {
		var registered bool
		if registered, err = d.HasVoter(id); err != nil {
			return
		}

		var count uint32
		if count, err = d.VoteCount(id); err != nil {
			return
		}

		return resource.NewVoter(d.Address(), id.String(), registered, count), nil
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, payload)
}

// GetDAOVotersHandler lists the registered voters ordered by identity. The
// `cursor` is the identity the page starts from; the `next` link carries
// the first identity of the following page.
func (api NetworkHandlerAPI) GetDAOVotersHandler(w http.ResponseWriter, r *http.Request) {
	d, err := api.loadDAO(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	p, err := httputils.NewPageQuery(r, api.maxLimit())
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	prefix := dao.GetVoterKeyPrefix(d.Address())

	options := p.ListOptions()
	if len(p.Cursor()) > 0 {
		options.SetCursor([]byte(prefix + string(p.Cursor())))
	}
	options.SetLimit(p.Limit() + 1)

	var (
		rs   = []resource.Resource{}
		next []byte
	)

	iterFunc, closeFunc := api.storage.GetIterator(prefix, options)
	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}

		id := string(item.Key[len(prefix):])
		if uint64(len(rs)) == p.Limit() {
			next = []byte(id)
			break
		}

		var count uint32
		if err = common.DecodeJSONValue(item.Value, &count); err != nil {
			break
		}
		rs = append(rs, resource.NewVoter(d.Address(), id, true, count))
	}
	closeFunc()

	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	var nextLink string
	if len(next) > 0 {
		nextLink = p.NextLink(next)
	}

	httputils.MustWriteJSON(w, 200, resource.NewResourceList(rs, p.SelfLink(), nextLink))
}

func (api NetworkHandlerAPI) GetDAOProposalHandler(w http.ResponseWriter, r *http.Request) {
	d, err := api.loadDAO(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	index, err := parseIndex(mux.Vars(r)["index"])
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	proposal, err := d.GetProposal(index)
	if err != nil {
		httputils.WriteError(w, err)
		return
	} else if proposal == nil {
		httputils.WriteError(w, errors.ProposalDoesNotExist.Clone().SetData("index", index))
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewProposal(d.Address(), index, proposal))
}

// GetDAOProposalsHandler lists the proposal slots by index, removed slots
// included. The `cursor` is the index the page starts from.
func (api NetworkHandlerAPI) GetDAOProposalsHandler(w http.ResponseWriter, r *http.Request) {
	d, err := api.loadDAO(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	p, err := httputils.NewPageQuery(r, api.maxLimit())
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	count, err := d.ProposalCount()
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	start := int64(0)
	if p.Reverse() {
		start = int64(count) - 1
	}
	if len(p.Cursor()) > 0 {
		var index uint32
		if index, err = parseIndex(string(p.Cursor())); err != nil {
			httputils.WriteError(w, err)
			return
		}
		if !p.Reverse() || int64(index) < start {
			start = int64(index)
		}
	}

	step := int64(1)
	if p.Reverse() {
		step = -1
	}

	var (
		rs   = []resource.Resource{}
		next []byte
	)
	for i := start; i >= 0 && i < int64(count); i += step {
		if uint64(len(rs)) == p.Limit() {
			next = []byte(strconv.FormatInt(i, 10))
			break
		}

		var proposal *dao.Proposal
		if proposal, err = d.GetProposal(uint32(i)); err != nil {
			httputils.WriteError(w, err)
			return
		}
		rs = append(rs, resource.NewProposal(d.Address(), uint32(i), proposal))
	}

	var nextLink string
	if len(next) > 0 {
		nextLink = p.NextLink(next)
	}

	httputils.MustWriteJSON(w, 200, resource.NewResourceList(rs, p.SelfLink(), nextLink))
}
