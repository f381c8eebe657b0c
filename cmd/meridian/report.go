package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"helmline-hq/meridian/pkg/governance"
)

var reportFlags struct {
	reportType string
	format     string
}

var reportCmd = &cobra.Command{
	Use:   "report <scenario.yaml>",
	Short: "Generate a portfolio report for a scenario",
	Long: `Generate a derived report from a scenario. Three report types are
available:

  health   violation/warning rollup, utilization, overloads, items at risk
  summary  one-line portfolio totals
  plan     per-team capacity ledger across the planning horizon

Examples:
  meridian report scenario.yaml --type health
  meridian report scenario.yaml --type plan --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportFlags.reportType, "type", "health", "report type: health, summary, plan")
	reportCmd.Flags().StringVar(&reportFlags.format, "format", "text", "output format: text, json")
}

func runReport(cmd *cobra.Command, args []string) error {
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

	switch reportFlags.reportType {
	case "health":
		report := engine.HealthReport(scenario)
		if reportFlags.format == "json" {
			return printJSON(report)
		}
		printHealthReport(report)
	case "summary":
		summary := engine.Summary(scenario)
		if reportFlags.format == "json" {
			return printJSON(summary)
		}
		printSummary(summary)
	case "plan":
		plan := engine.CapacityPlan(scenario)
		if reportFlags.format == "json" {
			return printJSON(plan)
		}
		printCapacityPlan(plan)
	default:
		cmd.SilenceUsage = false
		return fmt.Errorf("unknown report type %q (expected health, summary, or plan)", reportFlags.reportType)
	}
	return nil
}

func printHealthReport(r *governance.PortfolioHealthReport) {
	fmt.Printf("Health report for %q\n", r.ScenarioID)
	fmt.Printf("Feasible: %v\n", r.Feasible)
	fmt.Printf("Utilization: mean %.1f%%, peak %.1f%%\n", r.MeanUtilization*100, r.PeakUtilization*100)

	if len(r.ViolationsByConstraint) > 0 {
		fmt.Printf("\nViolations by constraint:\n")
		for _, id := range sortedKeys(r.ViolationsByConstraint) {
			fmt.Printf("  %-24s %d\n", id, r.ViolationsByConstraint[id])
		}
	}
	if len(r.WarningsByConstraint) > 0 {
		fmt.Printf("\nWarnings by constraint:\n")
		for _, id := range sortedKeys(r.WarningsByConstraint) {
			fmt.Printf("  %-24s %d\n", id, r.WarningsByConstraint[id])
		}
	}
	if len(r.OverloadedCells) > 0 {
		fmt.Printf("\nOverloaded cells:\n")
		for _, cell := range r.OverloadedCells {
			fmt.Printf("  %s period %d: %d/%d\n", cell.TeamID, cell.Period, cell.Allocated, cell.Available)
		}
	}
	if len(r.ItemsAtRisk) > 0 {
		fmt.Printf("\nItems at risk:\n")
		for _, id := range r.ItemsAtRisk {
			fmt.Printf("  - %s\n", id)
		}
	}
}

func printSummary(s *governance.PortfolioSummary) {
	fmt.Printf("Scenario:    %s (%s)\n", s.ScenarioID, s.Name)
	fmt.Printf("Horizon:     %d period(s)\n", s.Horizon)
	fmt.Printf("Teams:       %d\n", s.TeamCount)
	fmt.Printf("Items:       %d\n", s.ItemCount)
	fmt.Printf("Capacity:    %d tokens\n", s.TotalCapacity)
	fmt.Printf("Allocated:   %d tokens (%.1f%%)\n", s.TotalAllocated, s.OverallUtilization*100)
	fmt.Printf("Feasible:    %v\n", s.Feasible)
}

func printCapacityPlan(p *governance.CapacityPlan) {
	fmt.Printf("Capacity plan for %q (%d period(s))\n", p.ScenarioID, p.Horizon)
	for _, row := range p.Teams {
		fmt.Printf("\n%s (%s): %d/%d tokens allocated\n", row.TeamID, row.TeamName, row.TotalAllocated, row.TotalCapacity)
		for period := 0; period < p.Horizon; period++ {
			fmt.Printf("  period %d: capacity %d, allocated %d, free %d\n",
				period, row.Capacity[period], row.Allocated[period], row.Free[period])
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
