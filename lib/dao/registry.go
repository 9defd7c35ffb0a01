package dao

import (
	"boscoin.io/minidao/lib/errors"
)

// VoterRegistry maps a voter to the number of votes it has cast.
type VoterRegistry struct {
	backend Backend
	address string
}

func NewVoterRegistry(backend Backend, address string) *VoterRegistry {
	return &VoterRegistry{backend: backend, address: address}
}

func (r *VoterRegistry) key(id Identity) string {
	return GetVoterKey(r.address, id)
}

func (r *VoterRegistry) Register(id Identity) error {
	if err := r.backend.New(r.key(id), uint32(0)); err != nil {
		if errors.StorageRecordAlreadyExists.Is(err) {
			return errors.VoterAlreadyRegistered
		}
		return err
	}

	return nil
}

func (r *VoterRegistry) Deregister(id Identity) error {
	if err := r.backend.Remove(r.key(id)); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			return errors.VoterNotRegistered
		}
		return err
	}

	return nil
}

func (r *VoterRegistry) Contains(id Identity) (bool, error) {
	return r.backend.Has(r.key(id))
}

// Tally returns 0 for an unknown voter.
func (r *VoterRegistry) Tally(id Identity) (uint32, error) {
	var tally uint32
	if err := r.backend.Get(r.key(id), &tally); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			return 0, nil
		}
		return 0, err
	}

	return tally, nil
}

// Increment expects `id` to be registered already.
func (r *VoterRegistry) Increment(id Identity) error {
	tally, err := r.Tally(id)
	if err != nil {
		return err
	}

	return r.backend.Set(r.key(id), tally+1)
}
