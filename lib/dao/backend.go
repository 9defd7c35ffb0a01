package dao

import "fmt"

// Backend is the record store a DAO keeps its state in;
// `*storage.LevelDBBackend` satisfies it.
type Backend interface {
	Has(string) (bool, error)
	Get(string, interface{}) error
	New(string, interface{}) error
	Set(string, interface{}) error
	Remove(string) error
}

const (
	NamePrefix           = "dao-name-"
	VoterPrefix          = "dao-voter-"
	ProposalLengthPrefix = "dao-proposal-length-"
	ProposalPrefix       = "dao-proposal-"
)

func GetNameKey(address string) string {
	return fmt.Sprintf("%s%s", NamePrefix, address)
}

func GetVoterKeyPrefix(address string) string {
	return fmt.Sprintf("%s%s-", VoterPrefix, address)
}

func GetVoterKey(address string, id Identity) string {
	return fmt.Sprintf("%s%s", GetVoterKeyPrefix(address), id)
}

func GetProposalLengthKey(address string) string {
	return fmt.Sprintf("%s%s", ProposalLengthPrefix, address)
}

// GetProposalKeyPrefix is distinct from the length key, so iterating the
// proposals never hits `dao-proposal-length-`.
func GetProposalKeyPrefix(address string) string {
	return fmt.Sprintf("%s%s-", ProposalPrefix, address)
}

func GetProposalKey(address string, index uint32) string {
	return fmt.Sprintf("%s%010d", GetProposalKeyPrefix(address), index)
}
