package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hamed0406/waitgate/internal/config"
	"github.com/hamed0406/waitgate/internal/endpoint"
	"github.com/hamed0406/waitgate/internal/source"
)

// checkCmd validates endpoints and configuration without opening a single
// socket, so CI can reject a broken endpoint list before deploy time.
var checkCmd = &cobra.Command{
	Use:   "check [endpoint...]",
	Short: "Validate endpoints and configuration without dialing",
	Long: `Parse the given endpoints (or the config file, or discovered
<SERVICE>_<INDEX>_PORT variables) and report anything that could never be
probed. No connections are attempted.

Exit codes:
  0 - every endpoint is well-formed
  1 - at least one endpoint is malformed or uses an unsupported protocol`,
	Args: cobra.ArbitraryArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringP("config", "c", "", "path to a YAML endpoint list")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	raws := args
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		f, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		for _, ep := range f.Endpoints {
			raws = append(raws, ep.Address)
		}
	}
	if len(raws) == 0 {
		raws = source.Environ(os.Environ()).Endpoints()
	}
	if len(raws) == 0 {
		fmt.Fprintln(os.Stderr, "⚠ nothing to check: no endpoints given or discovered")
		return nil
	}

	bad := 0
	for _, raw := range raws {
		ep := endpoint.Parse(raw)
		if ep.Usable() {
			fmt.Println("✔", raw)
		} else {
			fmt.Fprintf(os.Stderr, "✖ %s: %s\n", raw, ep.Reason)
			bad++
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d endpoints invalid", bad, len(raws))
	}
	return nil
}
