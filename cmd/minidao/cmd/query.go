package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"boscoin.io/minidao/cmd/minidao/common"
	"boscoin.io/minidao/lib/client"
)

var (
	flagQueryLimit   string
	flagQueryCursor  string
	flagQueryReverse bool
)

func pageQueries() []client.Q {
	var qs []client.Q
	if len(flagQueryLimit) > 0 {
		qs = append(qs, client.Q{Key: client.QueryLimit, Value: flagQueryLimit})
	}
	if len(flagQueryCursor) > 0 {
		qs = append(qs, client.Q{Key: client.QueryCursor, Value: flagQueryCursor})
	}
	if flagQueryReverse {
		qs = append(qs, client.Q{Key: client.QueryReverse, Value: "true"})
	}
	return qs
}

func init() {
	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "Query the state of a node",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	commands := []*cobra.Command{
		{
			Use:   "account <address>",
			Short: "Print account",
			Args:  cobra.ExactArgs(1),
			Run: func(c *cobra.Command, args []string) {
				v, err := newClient(c).LoadAccount(args[0])
				printQueryResult(c, v, err)
			},
		},
		{
			Use:   "dao <dao address>",
			Short: "Print DAO",
			Args:  cobra.ExactArgs(1),
			Run: func(c *cobra.Command, args []string) {
				v, err := newClient(c).LoadDAO(args[0])
				printQueryResult(c, v, err)
			},
		},
		{
			Use:   "voter <dao address> <voter>",
			Short: "Print voter of DAO",
			Args:  cobra.ExactArgs(2),
			Run: func(c *cobra.Command, args []string) {
				v, err := newClient(c).LoadVoter(args[0], args[1])
				printQueryResult(c, v, err)
			},
		},
		{
			Use:   "voters <dao address>",
			Short: "Print registered voters of DAO",
			Args:  cobra.ExactArgs(1),
			Run: func(c *cobra.Command, args []string) {
				v, err := newClient(c).LoadVoters(args[0], pageQueries()...)
				printQueryResult(c, v, err)
			},
		},
		{
			Use:   "proposal <dao address> <index>",
			Short: "Print proposal of DAO",
			Args:  cobra.ExactArgs(2),
			Run: func(c *cobra.Command, args []string) {
				index, err := strconv.ParseUint(args[1], 10, 32)
				if err != nil {
					common.PrintFlagsError(c, "<index>", err)
				}

				v, err := newClient(c).LoadProposal(args[0], uint32(index))
				printQueryResult(c, v, err)
			},
		},
		{
			Use:   "proposals <dao address>",
			Short: "Print proposals of DAO",
			Args:  cobra.ExactArgs(1),
			Run: func(c *cobra.Command, args []string) {
				v, err := newClient(c).LoadProposals(args[0], pageQueries()...)
				printQueryResult(c, v, err)
			},
		},
	}

	for _, c := range commands {
		addClientFlags(c, false)
		switch c.Name() {
		case "voters", "proposals":
			c.Flags().StringVar(&flagQueryLimit, "limit", "", "maximum number of records")
			c.Flags().StringVar(&flagQueryCursor, "cursor", "", "cursor to start from")
			c.Flags().BoolVar(&flagQueryReverse, "reverse", false, "reverse order")
		}
		queryCmd.AddCommand(c)
	}

	rootCmd.AddCommand(queryCmd)
}

func printQueryResult(c *cobra.Command, v interface{}, err error) {
	if err != nil {
		common.PrintError(err)
	}

	printOutput(c, v)
}
