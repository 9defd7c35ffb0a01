package resource

import (
	"strconv"

	"github.com/nvellon/hal"

	"boscoin.io/minidao/lib/dao"
)

// Proposal is a slot of the proposal store; a removed slot has no vote count.
type Proposal struct {
	dao      string
	index    uint32
	proposal *dao.Proposal
}

func NewProposal(address string, index uint32, p *dao.Proposal) *Proposal {
	return &Proposal{
		dao:      address,
		index:    index,
		proposal: p,
	}
}

func (p Proposal) GetMap() hal.Entry {
	entry := hal.Entry{
		"dao":     p.dao,
		"index":   p.index,
		"removed": p.proposal == nil,
	}
	if p.proposal != nil {
		entry["vote_count"] = p.proposal.VoteCount
	}

	return entry
}

func (p Proposal) Resource() *hal.Resource {
	r := hal.NewResource(p, p.LinkSelf())
	r.AddLink("dao", hal.NewLink(replaceURL(URLDAOs, "{id}", p.dao)))
	return r
}

func (p Proposal) LinkSelf() string {
	return replaceURL(URLDAOProposal, "{id}", p.dao, "{index}", strconv.FormatUint(uint64(p.index), 10))
}
