package dao

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/storage"
)

func TestProposalStore(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	s := NewProposalStore(st, "address")

	// length is 0 before the store is initialized
	length, err := s.Len()
	require.NoError(t, err)
	require.Equal(t, uint32(0), length)

	index, err := s.Append(Proposal{VoteCount: 3})
	require.NoError(t, err)
	require.Equal(t, uint32(0), index)

	index, err = s.Append(NewProposal())
	require.NoError(t, err)
	require.Equal(t, uint32(1), index)

	require.NoError(t, s.Set(1, Proposal{VoteCount: 9}))

	p, err := s.Get(1)
	require.NoError(t, err)
	require.Equal(t, uint32(9), p.VoteCount)

	require.NoError(t, s.Clear(0))
	require.NoError(t, s.Clear(0))

	p, err = s.Get(0)
	require.NoError(t, err)
	require.Nil(t, p)

	require.Equal(t, errors.StorageRecordDoesNotExist, s.Set(0, NewProposal()))

	length, err = s.Len()
	require.NoError(t, err)
	require.Equal(t, uint32(2), length)
}

func TestVoterRegistry(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	r := NewVoterRegistry(st, "address")
	other := NewVoterRegistry(st, "other")
	id := NewTestIdentity()

	require.NoError(t, r.Register(id))
	require.NoError(t, r.Increment(id))
	require.NoError(t, r.Increment(id))

	tally, err := r.Tally(id)
	require.NoError(t, err)
	require.Equal(t, uint32(2), tally)

	ok, err := other.Contains(id)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, r.Deregister(id))
	tally, err = r.Tally(id)
	require.NoError(t, err)
	require.Equal(t, uint32(0), tally)
}
