package config

import "time"

// Default values for configuration fields.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultSourceType       = "file"
	DefaultSourcePath       = "./scenarios"
	DefaultDebounceInterval = 100 * time.Millisecond

	DefaultGitBranch  = "main"
	DefaultGitTimeout = 30 * time.Second

	DefaultCapacitySoftThreshold = 0.9
	DefaultBudgetWarnThreshold   = 0.8

	DefaultDecisionLogBackend = "memory"
	DefaultSQLitePath         = "data/decisions.db"
	DefaultSQLiteBusyTimeout  = 5 * time.Second

	DefaultReportSchedule = "0 * * * *"

	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultMetricsNamespace     = "meridian"
	DefaultMetricsSubsystem     = "governance"
)

// DefaultConfig returns a fully defaulted configuration.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}

	if cfg.Source.Type == "" {
		cfg.Source.Type = DefaultSourceType
	}
	if cfg.Source.Path == "" {
		cfg.Source.Path = DefaultSourcePath
	}
	if cfg.Source.DebounceInterval <= 0 {
		cfg.Source.DebounceInterval = DefaultDebounceInterval
	}
	if cfg.Source.Git.Branch == "" {
		cfg.Source.Git.Branch = DefaultGitBranch
	}
	if cfg.Source.Git.Timeout <= 0 {
		cfg.Source.Git.Timeout = DefaultGitTimeout
	}

	if cfg.Constraints.CapacitySoftThreshold == 0 {
		cfg.Constraints.CapacitySoftThreshold = DefaultCapacitySoftThreshold
	}
	if cfg.Constraints.BudgetWarnThreshold == 0 {
		cfg.Constraints.BudgetWarnThreshold = DefaultBudgetWarnThreshold
	}

	if cfg.DecisionLog.Backend == "" {
		cfg.DecisionLog.Backend = DefaultDecisionLogBackend
	}
	if cfg.DecisionLog.SQLitePath == "" {
		cfg.DecisionLog.SQLitePath = DefaultSQLitePath
	}
	if cfg.DecisionLog.SQLiteBusyTimeout <= 0 {
		cfg.DecisionLog.SQLiteBusyTimeout = DefaultSQLiteBusyTimeout
	}

	if cfg.Reporting.Schedule == "" {
		cfg.Reporting.Schedule = DefaultReportSchedule
	}

	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}
