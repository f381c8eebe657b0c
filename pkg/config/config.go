package config

import "time"

// Config is the root engine configuration.
type Config struct {
	// Logging configures the process logger.
	Logging LoggingConfig `yaml:"logging"`

	// Source configures where scenarios are loaded from.
	Source SourceConfig `yaml:"source"`

	// Constraints tunes the constraint evaluators.
	Constraints ConstraintsConfig `yaml:"constraints"`

	// DecisionLog configures the durable decision log mirror.
	DecisionLog DecisionLogConfig `yaml:"decision_log"`

	// Reporting configures scheduled health snapshots.
	Reporting ReportingConfig `yaml:"reporting"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`

	// Format is the output format ("json" or "text").
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	AddSource bool `yaml:"add_source"`
}

// SourceConfig selects and configures the scenario source.
type SourceConfig struct {
	// Type is the source backend: "file" or "git".
	Type string `yaml:"type"`

	// Path is the scenario file or directory for the file backend.
	Path string `yaml:"path"`

	// Watch enables filesystem watching for the file backend.
	Watch bool `yaml:"watch"`

	// DebounceInterval is the watcher's quiet period before a reload.
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// Git configures the git backend.
	Git GitSourceConfig `yaml:"git"`
}

// GitSourceConfig configures the git scenario source.
type GitSourceConfig struct {
	// Repository is the clone URL or local path.
	Repository string `yaml:"repository"`

	// Branch is the branch to track.
	Branch string `yaml:"branch"`

	// Path is the scenario subdirectory inside the repository.
	Path string `yaml:"path"`

	// LocalPath is the checkout location.
	LocalPath string `yaml:"local_path"`

	// Depth limits clone history. Zero clones everything.
	Depth int `yaml:"depth"`

	// Timeout bounds clone and pull operations.
	Timeout time.Duration `yaml:"timeout"`
}

// ConstraintsConfig tunes the built-in evaluators.
type ConstraintsConfig struct {
	// CapacitySoftThreshold is the utilization fraction above which the
	// capacity evaluator warns. Zero disables the warning.
	CapacitySoftThreshold float64 `yaml:"capacity_soft_threshold"`

	// BudgetTotalTokens is the default scenario-wide token ceiling.
	// Zero means no limit. A scenario's own budget spec wins.
	BudgetTotalTokens int `yaml:"budget_total_tokens"`

	// BudgetPerItemTokens is the default per-item token ceiling. Zero
	// means no limit.
	BudgetPerItemTokens int `yaml:"budget_per_item_tokens"`

	// BudgetWarnThreshold is the fraction of a ceiling at which the
	// budget evaluator warns. Zero disables the warning.
	BudgetWarnThreshold float64 `yaml:"budget_warn_threshold"`
}

// DecisionLogConfig configures the durable decision log mirror.
type DecisionLogConfig struct {
	// Backend selects the storage backend: "memory" or "sqlite". Empty
	// disables the mirror; the in-memory log always exists.
	Backend string `yaml:"backend"`

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `yaml:"sqlite_path"`

	// SQLiteBusyTimeout is the sqlite busy timeout.
	SQLiteBusyTimeout time.Duration `yaml:"sqlite_busy_timeout"`
}

// ReportingConfig configures scheduled health snapshots.
type ReportingConfig struct {
	// Enabled turns scheduled reporting on.
	Enabled bool `yaml:"enabled"`

	// Schedule is a cron expression for snapshot generation.
	Schedule string `yaml:"schedule"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	// Enabled turns metric recording on.
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address the watch command serves metrics on.
	ListenAddress string `yaml:"listen_address"`

	// Namespace is the Prometheus metric namespace.
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	Subsystem string `yaml:"subsystem"`
}
