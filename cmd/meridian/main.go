// Meridian is a portfolio constraint validation and governance engine.
//
// It evaluates scenarios of teams, scheduled work items, and token
// allocations over discrete planning periods against capacity,
// dependency, temporal, and budget constraints, and turns proposed
// changes into audited governance decisions.
//
// Usage:
//
//	# Validate a scenario file
//	meridian validate scenario.yaml
//
//	# Evaluate a proposed change
//	meridian decide scenario.yaml --change change.yaml
//
//	# Compare hypothetical edits
//	meridian whatif scenario.yaml --changes changes.yaml
//
//	# Produce reports
//	meridian report scenario.yaml --type health
//
//	# Reschedule items to feasible starts
//	meridian autoschedule scenario.yaml
//
//	# Run continuously with file watching, cron reports, and metrics
//	meridian watch
package main

func main() {
	Execute()
}
