package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/stellar/go/keypair"

	"boscoin.io/minidao/cmd/minidao/common"
	"boscoin.io/minidao/lib/contract/native/execfunc"
	"boscoin.io/minidao/lib/contract/payload"
	"boscoin.io/minidao/lib/transaction"
	"boscoin.io/minidao/lib/transaction/operation"
)

var flagDeployAddress string

func init() {
	deployCmd := &cobra.Command{
		Use:   "deploy <secret seed> [<name>]",
		Short: "Deploy new DAO",
		Args:  cobra.MinimumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			networkID := checkNetworkID(c)
			kp := parseSecretSeed(c, args[0])
			name := strings.Join(args[1:], " ")

			address := flagDeployAddress
			if len(address) < 1 {
				random, _ := keypair.Random()
				address = random.Address()
			} else if _, err := keypair.Parse(address); err != nil {
				common.PrintFlagsError(c, "--address", err)
			}

			cl := newClient(c)

			account, err := cl.LoadAccount(kp.Address())
			if err != nil {
				common.PrintError(err)
			}

			op, err := operation.NewOperation(operation.NewContractDeploy(address, payload.Native, execfunc.DAOKind, name))
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

	addClientFlags(deployCmd, true)
	deployCmd.Flags().StringVar(&flagDeployAddress, "address", "", "address of the new DAO; random address by default")

	rootCmd.AddCommand(deployCmd)
}
