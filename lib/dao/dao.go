package dao

import (
	"boscoin.io/minidao/lib/errors"
)

// DAO runs the governance operations of one deployed instance. Calls must be
// serialized by the host and every failure is reported before any state is
// touched, so a failed call leaves the instance as it was.
type DAO struct {
	address   string
	name      string
	voters    *VoterRegistry
	proposals *ProposalStore
}

func newDAO(backend Backend, address, name string) *DAO {
	return &DAO{
		address:   address,
		name:      name,
		voters:    NewVoterRegistry(backend, address),
		proposals: NewProposalStore(backend, address),
	}
}

// New stores a new instance under `address`.
func New(backend Backend, address, name string) (*DAO, error) {
	if err := backend.New(GetNameKey(address), name); err != nil {
		if errors.StorageRecordAlreadyExists.Is(err) {
			return nil, errors.ContractAlreadyExists
		}
		return nil, err
	}

	d := newDAO(backend, address, name)
	if err := d.proposals.init(); err != nil {
		return nil, err
	}

	return d, nil
}

// Load opens the instance stored under `address`.
func Load(backend Backend, address string) (*DAO, error) {
	var name string
	if err := backend.Get(GetNameKey(address), &name); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			return nil, errors.ContractNotFound
		}
		return nil, err
	}

	return newDAO(backend, address, name), nil
}

func Exists(backend Backend, address string) (bool, error) {
	return backend.Has(GetNameKey(address))
}

func (d *DAO) Address() string {
	return d.address
}

func (d *DAO) Name() string {
	return d.name
}

func (d *DAO) RegisterVoter(caller Identity) error {
	return d.voters.Register(caller)
}

func (d *DAO) DeregisterVoter(caller Identity) error {
	return d.voters.Deregister(caller)
}

func (d *DAO) HasVoter(id Identity) (bool, error) {
	return d.voters.Contains(id)
}

func (d *DAO) requireVoter(caller Identity) error {
	if ok, err := d.voters.Contains(caller); err != nil {
		return err
	} else if !ok {
		return errors.VoterNotRegistered
	}

	return nil
}

// CreateProposal appends an empty proposal and returns its index.
func (d *DAO) CreateProposal(caller Identity) (uint32, error) {
	if err := d.requireVoter(caller); err != nil {
		return 0, err
	}

	return d.proposals.Append(NewProposal())
}

func (d *DAO) RemoveProposal(caller Identity, index uint32) error {
	if err := d.requireVoter(caller); err != nil {
		return err
	}

	if p, err := d.proposals.Get(index); err != nil {
		return err
	} else if p == nil {
		return errors.ProposalDoesNotExist
	}

	return d.proposals.Clear(index)
}

// GetProposal returns nil for an unknown or removed proposal.
func (d *DAO) GetProposal(index uint32) (*Proposal, error) {
	return d.proposals.Get(index)
}

// Vote counts one vote of `caller` for the proposal. Nothing prevents the same
// voter from voting for the same proposal again; every call is counted.
func (d *DAO) Vote(caller Identity, index uint32) error {
	if err := d.requireVoter(caller); err != nil {
		return err
	}

	p, err := d.proposals.Get(index)
	if err != nil {
		return err
	} else if p == nil {
		return errors.ProposalDoesNotExist
	}

	p.VoteCount++
	if err := d.proposals.Set(index, *p); err != nil {
		return err
	}

	return d.voters.Increment(caller)
}

// VoteCount is 0 for an unregistered voter.
func (d *DAO) VoteCount(id Identity) (uint32, error) {
	return d.voters.Tally(id)
}

// ProposalCount includes the removed proposals.
func (d *DAO) ProposalCount() (uint32, error) {
	return d.proposals.Len()
}
