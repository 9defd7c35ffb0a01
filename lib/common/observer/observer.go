package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

var DAOObserver = observable.New()

const (
	ConditionAll = "*"

	EventVoterRegistered   = "voter-registered"
	EventVoterDeregistered = "voter-deregistered"
	EventProposalCreated   = "proposal-created"
	EventProposalRemoved   = "proposal-removed"
	EventVoted             = "voted"
	EventDeployed          = "deployed"
)

// Event is what `DAOObserver` delivers after a call was committed.
type Event struct {
	Contract string  `json:"contract"`
	Kind     string  `json:"kind"`
	Caller   string  `json:"caller"`
	Index    *uint32 `json:"index,omitempty"`
}

func NewEvent(contract, kind, caller string) Event {
	return Event{
		Contract: contract,
		Kind:     kind,
		Caller:   caller,
	}
}

func (e Event) SetIndex(i uint32) Event {
	e.Index = &i
	return e
}

// Topic is the observable event name of a contract; listeners of
// `Topic(ConditionAll)` receive the events of every contract.
func Topic(contract string) string {
	return "dao-" + contract
}

// Trigger fires the event for the contract topic and the catch-all topic.
func Trigger(e Event) {
	DAOObserver.Trigger(Topic(e.Contract), e)
	DAOObserver.Trigger(Topic(ConditionAll), e)
}
