package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"boscoin.io/minidao/cmd/minidao/common"
	"boscoin.io/minidao/lib/version"
)

func init() {
	var format string

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(c *cobra.Command, args []string) {
			if len(format) < 1 {
				fmt.Println(version.ToDetailVersion())
				return
			}

			encode, found := common.DefaultEncodes[format]
			if !found {
				common.PrintFlagsError(c, "--format", fmt.Errorf("unknown format, %q", format))
			}

			v := map[string]string{
				"version":    version.Version,
				"git_commit": version.GitCommit,
				"git_state":  version.GitState,
				"build_date": version.BuildDate,
				"go_version": runtime.Version(),
			}
			if err := encode(v, os.Stdout); err != nil {
				common.PrintError(err)
			}
		},
	}
	versionCmd.Flags().StringVar(&format, "format", format, "output format, {json, prettyjson, yaml}; empty is one line")

	rootCmd.AddCommand(versionCmd)
}
