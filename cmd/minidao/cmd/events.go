package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"boscoin.io/minidao/cmd/minidao/common"
	"boscoin.io/minidao/lib/client"
	"boscoin.io/minidao/lib/common/observer"
)

func init() {
	eventsCmd := &cobra.Command{
		Use:   "events [<dao address>]",
		Short: "Print the events of DAO until interrupted; every DAO without address",
		Args:  cobra.MaximumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			cl := newClient(c)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			stop := make(chan struct{})
			defer close(stop)
			go func() {
				common.Interrupt(stop)
				cancel()
			}()

			handler := func(e observer.Event) {
				printOutput(c, e)
			}

			var err error
			if len(args) < 1 {
				err = cl.StreamEvents(ctx, handler)
			} else {
				err = cl.StreamDAOEvents(ctx, args[0], func(d client.DAO) { printOutput(c, d) }, handler)
			}

			if err != nil {
				common.PrintError(err)
			}
		},
	}

	addClientFlags(eventsCmd, false)

	rootCmd.AddCommand(eventsCmd)
}
