package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"helmline-hq/meridian/pkg/governance"
)

var whatifFlags struct {
	changesFile string
	format      string
}

var whatifCmd = &cobra.Command{
	Use:   "whatif <scenario.yaml>",
	Short: "Analyze hypothetical changes without recording a decision",
	Long: `Apply a sequence of hypothetical changes to a scenario and compare the
result against the baseline. What-if analysis never touches the decision
log.

The changes file is a YAML list of labelled change requests:

  - label: pull alpha forward
    request:
      kind: move_item
      item_id: alpha
      new_start_period: 0
  - label: shrink beta
    request:
      kind: reallocate
      item_id: beta
      allocations:
        - team_id: core
          period: 2
          tokens: 3

Examples:
  meridian whatif scenario.yaml --changes changes.yaml
  meridian whatif scenario.yaml --changes changes.yaml --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runWhatIf,
}

func init() {
	rootCmd.AddCommand(whatifCmd)

	whatifCmd.Flags().StringVar(&whatifFlags.changesFile, "changes", "", "YAML list of hypothetical changes (required)")
	whatifCmd.Flags().StringVar(&whatifFlags.format, "format", "text", "output format: text, json")
	whatifCmd.MarkFlagRequired("changes")
}

func runWhatIf(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	scenario, err := loadScenario(args[0])
	if err != nil {
		return err
	}

	var changes []governance.WhatIfChange
	if err := readYAMLFile(whatifFlags.changesFile, &changes); err != nil {
		return err
	}

	engine, _, cleanup, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	cmd.SilenceUsage = true

	result, err := engine.WhatIf(scenario, changes)
	if err != nil {
		return err
	}

	if whatifFlags.format == "json" {
		return printJSON(result)
	}
	printWhatIfResult(result)
	return nil
}

func printWhatIfResult(r *governance.WhatIfResult) {
	fmt.Printf("What-if analysis with %d change(s)\n\n", len(r.Changes))
	for i, c := range r.Changes {
		label := c.Label
		if label == "" {
			label = string(c.Request.Kind)
		}
		fmt.Printf("  %d. %s\n", i+1, label)
	}

	d := r.Delta
	fmt.Printf("\nFeasible:    %v -> %v\n", d.FeasibleBefore, d.FeasibleAfter)
	fmt.Printf("Violations:  %d -> %d\n", d.ViolationsBefore, d.ViolationsAfter)
	fmt.Printf("Warnings:    %d -> %d\n", d.WarningsBefore, d.WarningsAfter)
	fmt.Printf("Utilization: %.1f%% -> %.1f%%\n", d.MeanUtilizationBefore*100, d.MeanUtilizationAfter*100)

	if len(d.AffectedItems) > 0 {
		fmt.Printf("\nAffected items:\n")
		for _, id := range d.AffectedItems {
			fmt.Printf("  - %s\n", id)
		}
	}
	if len(r.After.Violations) > 0 {
		fmt.Printf("\nRemaining violations (%d):\n", len(r.After.Violations))
		for _, v := range r.After.Violations {
			fmt.Printf("  [%s] %s\n", v.ConstraintID, v.Message)
		}
	}
}
