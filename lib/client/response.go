package client

import (
	"fmt"

	"boscoin.io/minidao/lib/contract/value"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/network/httputils"
)

// Error is returned for every non-2xx response of the node.
type Error struct {
	Problem httputils.Problem
}

func (e Error) Error() string {
	if len(e.Problem.Detail) > 0 {
		return fmt.Sprintf("%d %s: %s", e.Problem.Status, e.Problem.Title, e.Problem.Detail)
	}
	return fmt.Sprintf("%d %s", e.Problem.Status, e.Problem.Title)
}

// Is checks the error code the node responded with.
func (e Error) Is(err *errors.Error) bool {
	return e.Problem.Code == err.Code
}

type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type PageLinks struct {
	Self Link `json:"self"`
	Next Link `json:"next"`
	Prev Link `json:"prev"`
}

type Account struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`

	Address    string `json:"address"`
	SequenceID uint64 `json:"sequence_id"`
}

type DAO struct {
	Links struct {
		Self      Link `json:"self"`
		Voters    Link `json:"voters"`
		Voter     Link `json:"voter"`
		Proposals Link `json:"proposals"`
		Proposal  Link `json:"proposal"`
		Events    Link `json:"events"`
	} `json:"_links"`

	Address       string `json:"address"`
	Name          string `json:"name"`
	ProposalCount uint32 `json:"proposal_count"`
}

type Voter struct {
	Links struct {
		Self Link `json:"self"`
		DAO  Link `json:"dao"`
	} `json:"_links"`

	DAO        string `json:"dao"`
	ID         string `json:"id"`
	Registered bool   `json:"registered"`
	VoteCount  uint32 `json:"vote_count"`
}

type VotersPage struct {
	Links    PageLinks `json:"_links"`
	Embedded struct {
		Records []Voter `json:"records"`
	} `json:"_embedded"`
}

type Proposal struct {
	Links struct {
		Self Link `json:"self"`
		DAO  Link `json:"dao"`
	} `json:"_links"`

	DAO       string `json:"dao"`
	Index     uint32 `json:"index"`
	Removed   bool   `json:"removed"`
	VoteCount uint32 `json:"vote_count"`
}

type ProposalsPage struct {
	Links    PageLinks `json:"_links"`
	Embedded struct {
		Records []Proposal `json:"records"`
	} `json:"_embedded"`
}

// Result is the response of a submitted transaction.
type Result struct {
	Links struct {
		Self    Link `json:"self"`
		Account Link `json:"account"`
		DAO     Link `json:"dao"`
	} `json:"_links"`

	Hash       string       `json:"hash"`
	Source     string       `json:"source"`
	SequenceID uint64       `json:"sequence_id"`
	Operation  string       `json:"operation"`
	Contract   string       `json:"contract"`
	Result     *value.Value `json:"result"`
}
