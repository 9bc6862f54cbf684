// Package main is the entry point for the waitgate CLI.
//
// waitgate blocks until every given endpoint accepts a connection or its
// timeout elapses, then exits 0 on success and 1 otherwise. It is meant to
// run ahead of a dependent process, so the dependent never starts before the
// services it consumes are reachable.
//
// Usage:
//
//	waitgate tcp://db:5432 unix:///run/app.sock   # wait for two endpoints
//	waitgate -t 60 tcp://cache:6379               # custom budget
//	waitgate -c waitgate.yaml                     # endpoints from a file
//	waitgate check tcp://db:5432                  # validate without dialing
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "waitgate [endpoint...]",
	Short: "Block until network dependencies accept connections",
	Long: `waitgate is a dependency-readiness gate.

Given a set of endpoints it polls each one concurrently, once per second,
until the endpoint accepts a connection or a per-endpoint timeout (default
30s) runs out. The exit status is the only machine-readable output: 0 when
every endpoint came up, 1 otherwise. Progress messages go to stderr, never
to stdout.

Endpoint grammar:
  tcp://host:port    TCP connect check
  udp://host:port    zero-length datagram send (weak check: only an
                     immediately rejected send counts as down)
  unix:///some/path  local socket connect check

When no endpoints are given on the command line or in a config file,
waitgate scans the environment for <SERVICE>_<INDEX>_PORT variables
(e.g. DB_1_PORT=tcp://172.17.0.5:5432) and waits for their values.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runWait,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("waitgate %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.Flags().IntP("timeout", "t", 0, "per-endpoint timeout in seconds (default 30, env WAIT_TIMEOUT)")
	rootCmd.Flags().BoolP("quiet", "q", false, "suppress progress output; errors still print")
	rootCmd.Flags().Bool("debug", false, "log every probe attempt")
	rootCmd.Flags().StringP("config", "c", "", "path to a YAML endpoint list")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "waitgate:", err)
		os.Exit(1)
	}
}
