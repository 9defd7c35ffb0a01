package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stellar/go/keypair"

	"boscoin.io/minidao/cmd/minidao/common"
	"boscoin.io/minidao/lib/client"
	minicommon "boscoin.io/minidao/lib/common"
)

var (
	flagNodeURL string = minicommon.GetENVValue(
		"MINIDAO_NODE",
		fmt.Sprintf("http://127.0.0.1:%d", defaultPort),
	)
	flagFormat  string = "prettyjson"
	flagRetries int    = 3
)

// addClientFlags sets the flags of the commands talking to a running node.
func addClientFlags(c *cobra.Command, withNetworkID bool) {
	c.Flags().StringVar(&flagNodeURL, "node", flagNodeURL, "node endpoint")
	c.Flags().IntVar(&flagRetries, "retries", flagRetries, "retries of the failed queries")
	c.Flags().StringVar(&flagFormat, "format", flagFormat, "output format, {json, prettyjson, yaml}")
	if withNetworkID {
		c.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	}
}

func newClient(c *cobra.Command) *client.Client {
	endpoint, err := minicommon.ParseEndpoint(flagNodeURL)
	if err != nil {
		common.PrintFlagsError(c, "--node", err)
	}

	cl, err := client.NewClient(endpoint.String(), flagRetries)
	if err != nil {
		common.PrintError(err)
	}

	return cl
}

func parseSecretSeed(c *cobra.Command, s string) *keypair.Full {
	kp, err := keypair.Parse(s)
	if err != nil {
		common.PrintFlagsError(c, "<secret seed>", err)
	}

	full, ok := kp.(*keypair.Full)
	if !ok {
		common.PrintFlagsError(c, "<secret seed>", fmt.Errorf("public address is given, not secret seed"))
	}

	return full
}

func checkNetworkID(c *cobra.Command) []byte {
	if len(flagNetworkID) < 1 {
		common.PrintFlagsError(c, "--network-id", fmt.Errorf("must be given"))
	}
	return []byte(flagNetworkID)
}

func printOutput(c *cobra.Command, v interface{}) {
	encode, ok := common.DefaultEncodes[flagFormat]
	if !ok {
		common.PrintFlagsError(c, "--format", fmt.Errorf("%q not recognized", flagFormat))
	}

	if err := encode(v, os.Stdout); err != nil {
		common.PrintError(err)
	}
}
