package resource

import (
	"github.com/nvellon/hal"
)

type DAO struct {
	address       string
	name          string
	proposalCount uint32
}

func NewDAO(address, name string, proposalCount uint32) *DAO {
	return &DAO{
		address:       address,
		name:          name,
		proposalCount: proposalCount,
	}
}

func (d DAO) GetMap() hal.Entry {
	return hal.Entry{
		"address":        d.address,
		"name":           d.name,
		"proposal_count": d.proposalCount,
	}
}

func (d DAO) Resource() *hal.Resource {
	r := hal.NewResource(d, d.LinkSelf())
	r.AddLink("voters", hal.NewLink(replaceURL(URLDAOVoters, "{id}", d.address)+"{?cursor,limit,reverse}", hal.LinkAttr{"templated": true}))
	r.AddLink("voter", hal.NewLink(replaceURL(URLDAOVoter, "{id}", d.address), hal.LinkAttr{"templated": true}))
	r.AddLink("proposals", hal.NewLink(replaceURL(URLDAOProposals, "{id}", d.address)+"{?cursor,limit,reverse}", hal.LinkAttr{"templated": true}))
	r.AddLink("proposal", hal.NewLink(replaceURL(URLDAOProposal, "{id}", d.address), hal.LinkAttr{"templated": true}))
	r.AddLink("events", hal.NewLink(replaceURL(URLDAOEvents, "{id}", d.address)))
	return r
}

func (d DAO) LinkSelf() string {
	return replaceURL(URLDAOs, "{id}", d.address)
}
