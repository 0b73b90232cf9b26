/*
Package main is the entry point for search-cli.

search-cli runs the Neptune search pipeline in-process, without a broker
or HTTP server.

Usage:

	search-cli [command]

Examples:

	search-cli search "Find dishwasher repair in San Francisco"
	search-cli search --json --delay 0 plumber
	search-cli score 2
	search-cli legend
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "search-cli",
		Short:         "Run Neptune provider searches from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newLegendCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
