package cmd

import (
	"github.com/spf13/cobra"

	"boscoin.io/minidao/cmd/minidao/common"
	"boscoin.io/minidao/lib/transaction"
	"boscoin.io/minidao/lib/transaction/operation"
)

func init() {
	callCmd := &cobra.Command{
		Use:   "call <secret seed> <dao address> <method> [<argument>...]",
		Short: "Call the method of DAO",
		Long: `Call the method of DAO; the signer of the secret seed is the caller.

methods:
  register_voter
  deregister_voter
  create_proposal
  remove_proposal <index>
  vote <index>
  get_name
  has_voter <voter>
  get_proposal <index>
  vote_count <voter>
  proposal_count`,
		Args: cobra.MinimumNArgs(3),
		Run: func(c *cobra.Command, args []string) {
			networkID := checkNetworkID(c)
			kp := parseSecretSeed(c, args[0])

			cl := newClient(c)

			account, err := cl.LoadAccount(kp.Address())
			if err != nil {
				common.PrintError(err)
			}

			op, err := operation.NewOperation(operation.NewContractExecute(args[1], args[2], args[3:]...))
			if err != nil {
				common.PrintError(err)
			}

			tx := transaction.NewTransaction(kp.Address(), account.SequenceID, op)
			tx.Sign(kp, networkID)

			result, err := cl.SubmitTransaction(tx)
			if err != nil {
				common.PrintError(err)
			}

			printOutput(c, result)
		},
	}

	addClientFlags(callCmd, true)

	rootCmd.AddCommand(callCmd)
}
