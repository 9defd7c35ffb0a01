package dao

import (
	"boscoin.io/minidao/lib/errors"
)

// ProposalStore is an append-only sequence of proposals. A cleared slot keeps
// its index and is still counted by `Len()`, but holds no proposal.
type ProposalStore struct {
	backend Backend
	address string
}

func NewProposalStore(backend Backend, address string) *ProposalStore {
	return &ProposalStore{backend: backend, address: address}
}

func (s *ProposalStore) init() error {
	return s.backend.New(GetProposalLengthKey(s.address), uint32(0))
}

func (s *ProposalStore) Len() (uint32, error) {
	var length uint32
	if err := s.backend.Get(GetProposalLengthKey(s.address), &length); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			return 0, nil
		}
		return 0, err
	}

	return length, nil
}

// Append stores the proposal at the next index and returns that index.
func (s *ProposalStore) Append(p Proposal) (uint32, error) {
	index, err := s.Len()
	if err != nil {
		return 0, err
	}

	if err = s.backend.New(GetProposalKey(s.address, index), p); err != nil {
		return 0, err
	}

	lengthKey := GetProposalLengthKey(s.address)
	if exists, err := s.backend.Has(lengthKey); err != nil {
		return 0, err
	} else if !exists {
		err = s.backend.New(lengthKey, index+1)
	} else {
		err = s.backend.Set(lengthKey, index+1)
	}
	if err != nil {
		return 0, err
	}

	return index, nil
}

// Get returns nil when `index` is out of range or the slot was cleared.
func (s *ProposalStore) Get(index uint32) (*Proposal, error) {
	length, err := s.Len()
	if err != nil {
		return nil, err
	} else if index >= length {
		return nil, nil
	}

	var p Proposal
	if err := s.backend.Get(GetProposalKey(s.address, index), &p); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			return nil, nil
		}
		return nil, err
	}

	return &p, nil
}

// Set overwrites a live slot; a cleared or unknown slot results in
// `errors.StorageRecordDoesNotExist`.
func (s *ProposalStore) Set(index uint32, p Proposal) error {
	return s.backend.Set(GetProposalKey(s.address, index), p)
}

func (s *ProposalStore) Clear(index uint32) error {
	err := s.backend.Remove(GetProposalKey(s.address, index))
	if errors.StorageRecordDoesNotExist.Is(err) {
		return nil
	}

	return err
}
