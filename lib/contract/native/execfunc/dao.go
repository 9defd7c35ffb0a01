package execfunc

import (
	"strconv"

	"boscoin.io/minidao/lib/common/observer"
	"boscoin.io/minidao/lib/contract/context"
	"boscoin.io/minidao/lib/contract/native"
	"boscoin.io/minidao/lib/contract/payload"
	"boscoin.io/minidao/lib/contract/value"
	"boscoin.io/minidao/lib/dao"
	"boscoin.io/minidao/lib/errors"
)

const DAOKind = "dao"

const (
	MethodGetName         = "get_name"
	MethodRegisterVoter   = "register_voter"
	MethodDeregisterVoter = "deregister_voter"
	MethodHasVoter        = "has_voter"
	MethodCreateProposal  = "create_proposal"
	MethodRemoveProposal  = "remove_proposal"
	MethodGetProposal     = "get_proposal"
	MethodVote            = "vote"
	MethodVoteCount       = "vote_count"
	MethodProposalCount   = "proposal_count"
)

// ReadOnlyMethods do not change the state of the DAO.
var ReadOnlyMethods = []string{
	MethodGetName,
	MethodHasVoter,
	MethodGetProposal,
	MethodVoteCount,
	MethodProposalCount,
}

func init() {
	native.AddContract(DAOKind, DeployDAO, RegisterDAO)
}

// DeployDAO creates the DAO; `Code` is the name and may be empty.
func DeployDAO(ctx *context.Context, code *payload.DeployCode) (*value.Value, error) {
	if _, err := dao.New(ctx.Backend(), code.ContractAddress, string(code.Code)); err != nil {
		return nil, err
	}

	ctx.Emit(observer.NewEvent(code.ContractAddress, observer.EventDeployed, ctx.SenderAddress()))

	return value.NilValue, nil
}

func RegisterDAO(ex *native.NativeExecutor) {
	ex.RegisterFunc(MethodGetName, getName)
	ex.RegisterFunc(MethodRegisterVoter, registerVoter)
	ex.RegisterFunc(MethodDeregisterVoter, deregisterVoter)
	ex.RegisterFunc(MethodHasVoter, hasVoter)
	ex.RegisterFunc(MethodCreateProposal, createProposal)
	ex.RegisterFunc(MethodRemoveProposal, removeProposal)
	ex.RegisterFunc(MethodGetProposal, getProposal)
	ex.RegisterFunc(MethodVote, vote)
	ex.RegisterFunc(MethodVoteCount, voteCount)
	ex.RegisterFunc(MethodProposalCount, proposalCount)
}

func invalidArguments(code *payload.ExecCode, reason string) error {
	return errors.ContractInvalidArguments.Clone().
		SetData("method", code.Method).
		SetData("reason", reason)
}

func checkArgs(code *payload.ExecCode, n int) error {
	if len(code.Args) != n {
		return invalidArguments(code, "expected "+strconv.Itoa(n)+" arguments")
	}

	return nil
}

func parseIndex(code *payload.ExecCode) (uint32, error) {
	if err := checkArgs(code, 1); err != nil {
		return 0, err
	}

	i, err := strconv.ParseUint(code.Args[0], 10, 32)
	if err != nil {
		return 0, invalidArguments(code, "index must be uint32")
	}

	return uint32(i), nil
}

func parseIdentity(code *payload.ExecCode) (dao.Identity, error) {
	if err := checkArgs(code, 1); err != nil {
		return "", err
	}

	if len(code.Args[0]) < 1 {
		return "", invalidArguments(code, "empty identity")
	}

	return dao.Identity(code.Args[0]), nil
}

// load opens the DAO after checking the number of arguments.
func load(ex *native.NativeExecutor, code *payload.ExecCode, n int) (*dao.DAO, error) {
	if err := checkArgs(code, n); err != nil {
		return nil, err
	}

	return dao.Load(ex.Context.Backend(), code.ContractAddress)
}

func emit(ex *native.NativeExecutor, code *payload.ExecCode, kind string) {
	ex.Context.Emit(observer.NewEvent(code.ContractAddress, kind, ex.Context.SenderAddress()))
}

func emitIndex(ex *native.NativeExecutor, code *payload.ExecCode, kind string, index uint32) {
	ex.Context.Emit(
		observer.NewEvent(code.ContractAddress, kind, ex.Context.SenderAddress()).SetIndex(index),
	)
}

func getName(ex *native.NativeExecutor, code *payload.ExecCode) (*value.Value, error) {
	d, err := load(ex, code, 0)
	if err != nil {
		return nil, err
	}

	return value.ToValue(d.Name())
}

func registerVoter(ex *native.NativeExecutor, code *payload.ExecCode) (*value.Value, error) {
	d, err := load(ex, code, 0)
	if err != nil {
		return nil, err
	}

	if err := d.RegisterVoter(ex.Context.Sender()); err != nil {
		return nil, err
	}
	emit(ex, code, observer.EventVoterRegistered)

	return value.NilValue, nil
}

func deregisterVoter(ex *native.NativeExecutor, code *payload.ExecCode) (*value.Value, error) {
	d, err := load(ex, code, 0)
	if err != nil {
		return nil, err
	}

	if err := d.DeregisterVoter(ex.Context.Sender()); err != nil {
		return nil, err
	}
	emit(ex, code, observer.EventVoterDeregistered)

	return value.NilValue, nil
}

func hasVoter(ex *native.NativeExecutor, code *payload.ExecCode) (*value.Value, error) {
	id, err := parseIdentity(code)
	if err != nil {
		return nil, err
	}

	d, err := load(ex, code, 1)
	if err != nil {
		return nil, err
	}

	ok, err := d.HasVoter(id)
	if err != nil {
		return nil, err
	}

	return value.ToValue(ok)
}

func createProposal(ex *native.NativeExecutor, code *payload.ExecCode) (*value.Value, error) {
	d, err := load(ex, code, 0)
	if err != nil {
		return nil, err
	}

	index, err := d.CreateProposal(ex.Context.Sender())
	if err != nil {
		return nil, err
	}
	emitIndex(ex, code, observer.EventProposalCreated, index)

	return value.ToValue(index)
}

func removeProposal(ex *native.NativeExecutor, code *payload.ExecCode) (*value.Value, error) {
	index, err := parseIndex(code)
	if err != nil {
		return nil, err
	}

	d, err := load(ex, code, 1)
	if err != nil {
		return nil, err
	}

	if err := d.RemoveProposal(ex.Context.Sender(), index); err != nil {
		return nil, err
	}
	emitIndex(ex, code, observer.EventProposalRemoved, index)

	return value.NilValue, nil
}

func getProposal(ex *native.NativeExecutor, code *payload.ExecCode) (*value.Value, error) {
	index, err := parseIndex(code)
	if err != nil {
		return nil, err
	}

	d, err := load(ex, code, 1)
	if err != nil {
		return nil, err
	}

	p, err := d.GetProposal(index)
	if err != nil {
		return nil, err
	} else if p == nil {
		return value.NilValue, nil
	}

	return value.ToValue(*p)
}

func vote(ex *native.NativeExecutor, code *payload.ExecCode) (*value.Value, error) {
	index, err := parseIndex(code)
	if err != nil {
		return nil, err
	}

	d, err := load(ex, code, 1)
	if err != nil {
		return nil, err
	}

	if err := d.Vote(ex.Context.Sender(), index); err != nil {
		return nil, err
	}
	emitIndex(ex, code, observer.EventVoted, index)

	return value.NilValue, nil
}

func voteCount(ex *native.NativeExecutor, code *payload.ExecCode) (*value.Value, error) {
	id, err := parseIdentity(code)
	if err != nil {
		return nil, err
	}

	d, err := load(ex, code, 1)
	if err != nil {
		return nil, err
	}

	count, err := d.VoteCount(id)
	if err != nil {
		return nil, err
	}

	return value.ToValue(count)
}

func proposalCount(ex *native.NativeExecutor, code *payload.ExecCode) (*value.Value, error) {
	d, err := load(ex, code, 0)
	if err != nil {
		return nil, err
	}

	count, err := d.ProposalCount()
	if err != nil {
		return nil, err
	}

	return value.ToValue(count)
}
