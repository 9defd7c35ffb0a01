package resource

import (
	"github.com/nvellon/hal"
)

type Voter struct {
	dao        string
	id         string
	registered bool
	voteCount  uint32
}

func NewVoter(dao, id string, registered bool, voteCount uint32) *Voter {
	return &Voter{
		dao:        dao,
		id:         id,
		registered: registered,
		voteCount:  voteCount,
	}
}

func (v Voter) GetMap() hal.Entry {
	return hal.Entry{
		"dao":        v.dao,
		"id":         v.id,
		"registered": v.registered,
		"vote_count": v.voteCount,
	}
}

func (v Voter) Resource() *hal.Resource {
	r := hal.NewResource(v, v.LinkSelf())
	r.AddLink("dao", hal.NewLink(replaceURL(URLDAOs, "{id}", v.dao)))
	return r
}

func (v Voter) LinkSelf() string {
	return replaceURL(URLDAOVoter, "{id}", v.dao, "{voter}", v.id)
}
