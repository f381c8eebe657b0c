// Package metrics exposes Prometheus collectors for the governance
// engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"helmline-hq/meridian/pkg/constraints"
	"helmline-hq/meridian/pkg/governance"
)

// Config configures the metrics collector.
type Config struct {
	// Enabled turns metric recording on. When false the collector is a
	// no-op.
	Enabled bool `yaml:"enabled"`

	// Namespace is the Prometheus metric namespace.
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	Subsystem string `yaml:"subsystem"`

	// EvaluationBuckets are histogram buckets for evaluation duration
	// in seconds.
	EvaluationBuckets []float64 `yaml:"evaluation_buckets"`
}

// DefaultConfig returns the default metrics configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Namespace: "meridian",
		Subsystem: "governance",
	}
}

// Collector records governance decision metrics. It implements
// governance.Observer so it can be attached to an Engine directly.
type Collector struct {
	config   Config
	registry *prometheus.Registry

	decisions          *prometheus.CounterVec
	violations         *prometheus.CounterVec
	evaluationDuration prometheus.Histogram
	teamUtilization    *prometheus.GaugeVec
}

// NewCollector creates a collector registered on the given registry. A
// nil registry gets a fresh one.
func NewCollector(config Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if config.Namespace == "" {
		config.Namespace = "meridian"
	}
	if config.Subsystem == "" {
		config.Subsystem = "governance"
	}
	if len(config.EvaluationBuckets) == 0 {
		// Evaluations are in-memory and fast; sub-millisecond to 1s.
		config.EvaluationBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}
	}

	c := &Collector{
		config:   config,
		registry: registry,

		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "decisions_total",
			Help:      "Governance decisions by terminal status.",
		}, []string{"status"}),

		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "violations_total",
			Help:      "Constraint violations found during evaluations, by constraint.",
		}, []string{"constraint"}),

		evaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "evaluation_duration_seconds",
			Help:      "Elapsed time of governance evaluations.",
			Buckets:   config.EvaluationBuckets,
		}),

		teamUtilization: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "team_utilization",
			Help:      "Latest observed team utilization per period.",
		}, []string{"team", "period"}),
	}

	registry.MustRegister(c.decisions, c.violations, c.evaluationDuration, c.teamUtilization)

	return c
}

// ObserveDecision implements governance.Observer.
func (c *Collector) ObserveDecision(status governance.DecisionStatus, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.decisions.WithLabelValues(string(status)).Inc()
	c.evaluationDuration.Observe(duration.Seconds())
}

// ObserveViolations implements governance.Observer.
func (c *Collector) ObserveViolations(constraintID string, count int) {
	if !c.config.Enabled {
		return
	}
	c.violations.WithLabelValues(constraintID).Add(float64(count))
}

// RecordUtilization publishes the utilization grid of the latest
// validation.
func (c *Collector) RecordUtilization(cells []constraints.UtilizationCell) {
	if !c.config.Enabled {
		return
	}
	for _, cell := range cells {
		c.teamUtilization.WithLabelValues(cell.TeamID, strconv.Itoa(cell.Period)).Set(cell.Utilization)
	}
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
