// Package main provides the habitat CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "habitat",
		Short: "Score exoplanet habitability",
		Long: `Habitat scores a planet record between 0 and 100 from its equilibrium
temperature, radius, mass and host star. Records are scored locally or
by a running habitatd server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newScoreCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
