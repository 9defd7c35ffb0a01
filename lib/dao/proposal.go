package dao

import "encoding/json"

type Proposal struct {
	VoteCount uint32 `json:"vote_count"`
}

func NewProposal() Proposal {
	return Proposal{}
}

func (p Proposal) Serialize() ([]byte, error) {
	return json.Marshal(p)
}

func (p Proposal) String() string {
	b, _ := json.Marshal(p)
	return string(b)
}
