package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"helmline-hq/meridian/pkg/governance"
)

var autoscheduleFlags struct {
	format string
	output string
}

var autoscheduleCmd = &cobra.Command{
	Use:   "autoschedule <scenario.yaml>",
	Short: "Reschedule items to resolve constraint violations",
	Long: `Walk the work items in dependency order and move each to the earliest
start period where its dependencies are finished and team capacity holds.
Items with no feasible placement are reported as unplaced. The pass is
recorded in the decision log.

Examples:
  meridian autoschedule scenario.yaml
  meridian autoschedule scenario.yaml --output rescheduled.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runAutoSchedule,
}

func init() {
	rootCmd.AddCommand(autoscheduleCmd)

	autoscheduleCmd.Flags().StringVar(&autoscheduleFlags.format, "format", "text", "output format: text, json")
	autoscheduleCmd.Flags().StringVar(&autoscheduleFlags.output, "output", "", "write the rescheduled scenario YAML to this file")
}

func runAutoSchedule(cmd *cobra.Command, args []string) error {
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

	cmd.SilenceUsage = true

	result, err := engine.AutoSchedule(scenario)
	if err != nil {
		return err
	}

	if autoscheduleFlags.output != "" {
		data, err := yaml.Marshal(result.Scenario)
		if err != nil {
			return fmt.Errorf("encoding rescheduled scenario: %w", err)
		}
		if err := os.WriteFile(autoscheduleFlags.output, data, 0o644); err != nil {
			return fmt.Errorf("writing %q: %w", autoscheduleFlags.output, err)
		}
	}

	if autoscheduleFlags.format == "json" {
		return printJSON(result)
	}
	printAutoScheduleResult(result)
	return nil
}

func printAutoScheduleResult(r *governance.AutoScheduleResult) {
	if len(r.Moves) == 0 {
		fmt.Println("No items moved")
	} else {
		fmt.Printf("Moved %d item(s):\n", len(r.Moves))
		for _, m := range r.Moves {
			fmt.Printf("  %s: period %d -> %d\n", m.ItemID, m.FromStart, m.ToStart)
		}
	}
	if len(r.Unplaced) > 0 {
		fmt.Printf("\nUnplaced items (%d):\n", len(r.Unplaced))
		for _, id := range r.Unplaced {
			fmt.Printf("  - %s\n", id)
		}
	}
	if r.Result.Feasible {
		fmt.Println("\nRescheduled scenario is feasible")
	} else {
		fmt.Printf("\nRescheduled scenario is still INFEASIBLE (%d violation(s))\n", len(r.Result.Violations))
	}
}
