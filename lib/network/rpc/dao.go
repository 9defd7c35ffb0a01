package rpc

import (
	"net/http"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/contract"
	"boscoin.io/minidao/lib/contract/context"
	"boscoin.io/minidao/lib/contract/native/execfunc"
	"boscoin.io/minidao/lib/contract/payload"
	"boscoin.io/minidao/lib/contract/value"
	"boscoin.io/minidao/lib/dao"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/storage"
)

type DAOArgs struct {
	Address string
}

type DAOVoterArgs struct {
	Address string
	Voter   string
}

type DAOProposalArgs struct {
	Address string
	Index   uint32
}

type DAOQueryArgs struct {
	Address string
	Method  string
	Args    []string
}

type DAOQueryResult struct {
	Value *value.Value
}

type DAONameResult string
type DAOHasVoterResult bool
type DAOCountResult uint32

// DAOProposalResult has no `Proposal` when the slot is out of range or
// removed.
type DAOProposalResult struct {
	Proposal *dao.Proposal
}

// DAOService answers the read-only DAO queries straight from the storage.
type DAOService struct {
	st *storage.LevelDBBackend
}

type DAOExistsResult bool

func (s *DAOService) Exists(r *http.Request, args *DAOArgs, result *DAOExistsResult) error {
	found, err := dao.Exists(s.st, args.Address)
	if err != nil {
		return err
	}

	*result = DAOExistsResult(found)
	return nil
}

func (s *DAOService) Name(r *http.Request, args *DAOArgs, result *DAONameResult) error {
	d, err := dao.Load(s.st, args.Address)
	if err != nil {
		return err
	}

	*result = DAONameResult(d.Name())
	return nil
}

func (s *DAOService) HasVoter(r *http.Request, args *DAOVoterArgs, result *DAOHasVoterResult) error {
	d, err := dao.Load(s.st, args.Address)
	if err != nil {
		return err
	}

	found, err := d.HasVoter(dao.Identity(args.Voter))
	if err != nil {
		return err
	}

	*result = DAOHasVoterResult(found)
	return nil
}

func (s *DAOService) VoteCount(r *http.Request, args *DAOVoterArgs, result *DAOCountResult) error {
	d, err := dao.Load(s.st, args.Address)
	if err != nil {
		return err
	}

	count, err := d.VoteCount(dao.Identity(args.Voter))
	if err != nil {
		return err
	}

	*result = DAOCountResult(count)
	return nil
}

func (s *DAOService) GetProposal(r *http.Request, args *DAOProposalArgs, result *DAOProposalResult) error {
	d, err := dao.Load(s.st, args.Address)
	if err != nil {
		return err
	}

	p, err := d.GetProposal(args.Index)
	if err != nil {
		return err
	}

	result.Proposal = p
	return nil
}

func (s *DAOService) ProposalCount(r *http.Request, args *DAOArgs, result *DAOCountResult) error {
	d, err := dao.Load(s.st, args.Address)
	if err != nil {
		return err
	}

	count, err := d.ProposalCount()
	if err != nil {
		return err
	}

	*result = DAOCountResult(count)
	return nil
}

// Query runs one of the read-only contract methods against the deployed
// contract at `Address`; nothing is committed.
func (s *DAOService) Query(r *http.Request, args *DAOQueryArgs, result *DAOQueryResult) error {
	if _, found := common.InStringArray(execfunc.ReadOnlyMethods, args.Method); !found {
		return errors.ContractMethodNotFound.Clone().SetData("method", args.Method)
	}

	v, err := contract.Execute(
		context.NewContext("", s.st),
		&payload.ExecCode{ContractAddress: args.Address, Method: args.Method, Args: args.Args},
	)
	if err != nil {
		return err
	}

	result.Value = v
	return nil
}
