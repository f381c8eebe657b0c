// Package reporting produces scheduled portfolio health snapshots.
//
// A Reporter loads the current scenarios from a source, runs a health
// report for each through the governance engine, logs the rollup, and
// publishes utilization metrics. The Scheduler runs the Reporter on a
// cron expression for long-running deployments.
package reporting
