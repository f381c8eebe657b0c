package reporting

import (
	"context"
	"fmt"
	"log/slog"

	"helmline-hq/meridian/pkg/constraints"
	"helmline-hq/meridian/pkg/governance"
	"helmline-hq/meridian/pkg/scenario/source"
)

// UtilizationSink receives the utilization grid of each snapshot.
// *metrics.Collector satisfies it.
type UtilizationSink interface {
	RecordUtilization(cells []constraints.UtilizationCell)
}

// Snapshot is one reporting pass over every scenario a source serves.
type Snapshot struct {
	Source  string                              `json:"source"`
	Reports []*governance.PortfolioHealthReport `json:"reports"`
}

// Reporter computes health snapshots for all scenarios of a source.
type Reporter struct {
	engine *governance.Engine
	src    source.Source
	logger *slog.Logger
	sink   UtilizationSink
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithUtilizationSink publishes each snapshot's utilization grid, for
// example to the Prometheus collector.
func WithUtilizationSink(sink UtilizationSink) ReporterOption {
	return func(r *Reporter) {
		r.sink = sink
	}
}

// NewReporter creates a reporter over the given engine and source.
func NewReporter(engine *governance.Engine, src source.Source, opts ...ReporterOption) (*Reporter, error) {
	if engine == nil {
		return nil, fmt.Errorf("reporting: engine is required")
	}
	if src == nil {
		return nil, fmt.Errorf("reporting: source is required")
	}
	r := &Reporter{
		engine: engine,
		src:    src,
		logger: slog.Default().With("component", "reporting"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run loads the current scenarios and computes a health report for each.
func (r *Reporter) Run(ctx context.Context) (*Snapshot, error) {
	scenarios, err := r.src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading scenarios: %w", err)
	}

	snapshot := &Snapshot{Source: r.src.Describe()}
	for _, scenario := range scenarios {
		// One validation pass per scenario feeds both the report and
		// the utilization sink.
		result := r.engine.Validate(scenario)
		report := r.engine.HealthReportFrom(scenario, result)
		snapshot.Reports = append(snapshot.Reports, report)

		r.logger.Info("portfolio health snapshot",
			"scenario", report.ScenarioID,
			"feasible", report.Feasible,
			"mean_utilization", report.MeanUtilization,
			"peak_utilization", report.PeakUtilization,
			"items_at_risk", len(report.ItemsAtRisk))

		if r.sink != nil {
			r.sink.RecordUtilization(result.UtilizationMap)
		}
	}
	return snapshot, nil
}
