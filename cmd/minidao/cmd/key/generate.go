package key

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/stellar/go/keypair"

	"boscoin.io/minidao/cmd/minidao/common"
)

var (
	GenerateCmd *cobra.Command

	flagParse  bool
	flagFormat string
)

type keyPair struct {
	Seed       string `json:"seed" yaml:"seed"`
	Address    string `json:"address" yaml:"address"`
	Passphrase string `json:"passphrase,omitempty" yaml:"passphrase,omitempty"`
}

var defaultTemplate = template.Must(template.New("").Parse(`Secret Seed: {{ .Seed }}
    Address: {{ .Address }}{{ if .Passphrase }}
 Passphrase: "{{ .Passphrase }}"{{ end }}
`))

func defaultEncode(v interface{}, w io.Writer) error {
	return defaultTemplate.Execute(w, v)
}

func onelineEncode(v interface{}, w io.Writer) error {
	kp := v.(keyPair)
	_, err := fmt.Fprintf(w, "%s %s\n", kp.Seed, kp.Address)
	return err
}

func init() {
	GenerateCmd = &cobra.Command{
		Use:   "generate [<passphrase> | <secret seed>]",
		Short: "Generate keypair",
		Run: func(c *cobra.Command, args []string) {
			input := strings.TrimSpace(strings.Join(args, " "))
			if flagParse && len(input) < 1 {
				common.PrintFlagsError(c, "--parse", errors.New("--parse needs <secret seed>"))
			}

			kp, err := generateKP(input, flagParse)
			if err != nil {
				common.PrintFlagsError(c, "<input>", err)
			}

			encoders := map[string]common.Encode{
				"json":       common.DefaultEncodes["json"],
				"prettyjson": common.DefaultEncodes["prettyjson"],
				"yaml":       common.DefaultEncodes["yaml"],
				"default":    defaultEncode,
				"oneline":    onelineEncode,
			}

			encode, ok := encoders[flagFormat]
			if !ok {
				common.PrintFlagsError(c, "--format", fmt.Errorf("%q not recognized", flagFormat))
			}

			v := keyPair{Seed: kp.Seed(), Address: kp.Address()}
			if !flagParse {
				v.Passphrase = input
			}

			if err := encode(v, os.Stdout); err != nil {
				common.PrintError(err)
			}
		},
	}

	GenerateCmd.Flags().BoolVar(&flagParse, "parse", false, "parse secret seed")
	GenerateCmd.Flags().StringVar(&flagFormat, "format", "default", "format={default, json, oneline, prettyjson, yaml}")
}

// generateKP makes random keypair for empty input; otherwise the input is
// the passphrase of the keypair, or the secret seed with `fromSeed`.
func generateKP(input string, fromSeed bool) (full *keypair.Full, err error) {
	switch {
	case len(input) < 1:
		full, err = keypair.Random()
	case fromSeed:
		var kp keypair.KP
		if kp, err = keypair.Parse(input); err != nil {
			err = fmt.Errorf("failed to parse secret seed: %v", err)
			return
		}

		var ok bool
		if full, ok = kp.(*keypair.Full); !ok {
			err = errors.New("not a secret seed")
		}
	default:
		full = keypair.Master(input).(*keypair.Full)
	}

	return
}
