package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "meridian",
	Short: "Meridian - portfolio constraint validation and governance engine",
	Long: `Meridian validates portfolio scenarios against capacity, dependency,
temporal, and budget constraints, and governs proposed changes through an
audited decision pipeline.

A scenario allocates work items to teams across discrete planning periods.
Meridian answers two questions about it: is the plan feasible, and should a
proposed change to it be approved?`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
