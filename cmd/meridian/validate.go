package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"helmline-hq/meridian/pkg/constraints"
)

var validateFlags struct {
	format      string
	utilization bool
}

var validateCmd = &cobra.Command{
	Use:   "validate <scenario.yaml>",
	Short: "Validate a scenario against all constraints",
	Long: `Run the full constraint set against a scenario file and report the
result. Exits non-zero when the scenario is infeasible.

Examples:
  # Human-readable validation report
  meridian validate scenario.yaml

  # Machine-readable result with the utilization grid
  meridian validate scenario.yaml --format json --utilization`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
	validateCmd.Flags().BoolVar(&validateFlags.utilization, "utilization", false, "include the utilization grid in text output")
}

func runValidate(cmd *cobra.Command, args []string) error {
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

	engine, _, cleanup, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result := engine.Validate(scenario)

	cmd.SilenceUsage = true

	if validateFlags.format == "json" {
		if err := printJSON(result); err != nil {
			return err
		}
	} else {
		printValidationResult(scenario.ID, result)
	}

	if !result.Feasible {
		return fmt.Errorf("scenario %q is infeasible: %d violation(s)", scenario.ID, len(result.Violations))
	}
	return nil
}

func printValidationResult(scenarioID string, result *constraints.ValidationResult) {
	if result.Feasible {
		fmt.Printf("Scenario %q is feasible\n", scenarioID)
	} else {
		fmt.Printf("Scenario %q is INFEASIBLE\n", scenarioID)
	}

	if len(result.Violations) > 0 {
		fmt.Printf("\nViolations (%d):\n", len(result.Violations))
		for _, v := range result.Violations {
			fmt.Printf("  [%s] %s\n", v.ConstraintID, v.Message)
		}
	}
	if len(result.Warnings) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Printf("  [%s] %s\n", w.ConstraintID, w.Message)
		}
	}
	if validateFlags.utilization && len(result.UtilizationMap) > 0 {
		fmt.Println("\nUtilization:")
		for _, cell := range result.UtilizationMap {
			fmt.Printf("  %s period %d: %d/%d (%.0f%%)\n",
				cell.TeamID, cell.Period, cell.Allocated, cell.Available, cell.Utilization*100)
		}
	}
}
