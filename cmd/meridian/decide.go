package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"helmline-hq/meridian/pkg/governance"
)

var decideFlags struct {
	changeFile string
	format     string
}

var decideCmd = &cobra.Command{
	Use:   "decide <scenario.yaml>",
	Short: "Evaluate a proposed change and render a governance decision",
	Long: `Apply a proposed change to a projection of the scenario, validate it,
and classify the outcome as approved, approved with warnings, or rejected.
The decision is recorded in the decision log. Exits non-zero on rejection.

The change file is a YAML change request, for example:

  kind: move_item
  item_id: alpha
  new_start_period: 2

Examples:
  meridian decide scenario.yaml --change change.yaml
  meridian decide scenario.yaml --change change.yaml --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runDecide,
}

func init() {
	rootCmd.AddCommand(decideCmd)

	decideCmd.Flags().StringVar(&decideFlags.changeFile, "change", "", "change request YAML file (required)")
	decideCmd.Flags().StringVar(&decideFlags.format, "format", "text", "output format: text, json")
	decideCmd.MarkFlagRequired("change")
}

func runDecide(cmd *cobra.Command, args []string) error {
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

	var req governance.ChangeRequest
	if err := readYAMLFile(decideFlags.changeFile, &req); err != nil {
		return err
	}

	engine, _, cleanup, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	decision, err := engine.Propose(cmd.Context(), scenario, req)
	if err != nil {
		return err
	}

	cmd.SilenceUsage = true

	if decideFlags.format == "json" {
		if err := printJSON(decision); err != nil {
			return err
		}
	} else {
		printDecision(decision)
	}

	if decision.Status == governance.StatusRejected {
		return fmt.Errorf("change %s rejected", decision.Action)
	}
	return nil
}

func printDecision(d *governance.GovernanceDecision) {
	fmt.Printf("Decision %s\n", d.ID)
	fmt.Printf("Action:  %s\n", d.Action)
	fmt.Printf("Status:  %s\n", d.Status)
	fmt.Printf("Elapsed: %s\n", d.EvaluationTime)

	if d.Diagnostic != "" {
		fmt.Printf("Diagnostic: %s\n", d.Diagnostic)
	}
	if d.Result != nil {
		if len(d.Result.Violations) > 0 {
			fmt.Printf("\nViolations (%d):\n", len(d.Result.Violations))
			for _, v := range d.Result.Violations {
				fmt.Printf("  [%s] %s\n", v.ConstraintID, v.Message)
			}
		}
		if len(d.Result.Warnings) > 0 {
			fmt.Printf("\nWarnings (%d):\n", len(d.Result.Warnings))
			for _, w := range d.Result.Warnings {
				fmt.Printf("  [%s] %s\n", w.ConstraintID, w.Message)
			}
		}
	}
	if len(d.Suggestions) > 0 {
		fmt.Printf("\nSuggestions:\n")
		for _, s := range d.Suggestions {
			fmt.Printf("  - %s\n", s.Description)
		}
	}
}
