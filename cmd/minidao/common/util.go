package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"boscoin.io/minidao/lib/errors"
)

func errorString(err error) string {
	if e, ok := err.(*errors.Error); ok {
		if len(e.Data) > 0 {
			return fmt.Sprintf("%s, %v", e.Message, e.Data)
		}
		return e.Message
	}
	return err.Error()
}

// PrintFlagsError prints the error of the flag with the usage and exits.
func PrintFlagsError(cmd *cobra.Command, flagName string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid '%s'; %s\n\n", flagName, errorString(err))
	}

	cmd.Help()

	os.Exit(1)
}

// PrintError prints the error and exits without the usage.
func PrintError(err error) {
	fmt.Fprintf(os.Stderr, "error: %s\n", errorString(err))

	os.Exit(1)
}

// ParseRedisAddrs parses `<name>=<host:port>,...`; an address without
// name is named by its position.
func ParseRedisAddrs(s string) (map[string]string, error) {
	addrs := map[string]string{}
	for i, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if len(f) < 1 {
			continue
		}

		name, addr := fmt.Sprintf("shard%d", i), f
		if n := strings.Index(f, "="); n >= 0 {
			name, addr = f[:n], f[n+1:]
		}
		if len(name) < 1 || len(addr) < 1 {
			return nil, fmt.Errorf("invalid redis address, %q", f)
		}
		if _, found := addrs[name]; found {
			return nil, fmt.Errorf("duplicated redis name, %q", name)
		}
		addrs[name] = addr
	}

	return addrs, nil
}
