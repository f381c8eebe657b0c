package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults,
// and validates the result. Environment variables are not consulted;
// use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies MERIDIAN_* environment variable overrides on top. Overrides
// always win over the file; the result is re-validated.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("after environment overrides: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies MERIDIAN_SECTION_FIELD environment
// variables to the configuration.
func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Logging.Level, "MERIDIAN_LOG_LEVEL")
	setString(&cfg.Logging.Format, "MERIDIAN_LOG_FORMAT")

	setString(&cfg.Source.Type, "MERIDIAN_SOURCE_TYPE")
	setString(&cfg.Source.Path, "MERIDIAN_SOURCE_PATH")
	setBool(&cfg.Source.Watch, "MERIDIAN_SOURCE_WATCH")
	setString(&cfg.Source.Git.Repository, "MERIDIAN_SOURCE_GIT_REPO")
	setString(&cfg.Source.Git.Branch, "MERIDIAN_SOURCE_GIT_BRANCH")
	setString(&cfg.Source.Git.Path, "MERIDIAN_SOURCE_GIT_PATH")
	setString(&cfg.Source.Git.LocalPath, "MERIDIAN_SOURCE_GIT_LOCAL_PATH")

	setFloat(&cfg.Constraints.CapacitySoftThreshold, "MERIDIAN_CAPACITY_SOFT_THRESHOLD")
	setInt(&cfg.Constraints.BudgetTotalTokens, "MERIDIAN_BUDGET_TOTAL_TOKENS")
	setInt(&cfg.Constraints.BudgetPerItemTokens, "MERIDIAN_BUDGET_PER_ITEM_TOKENS")
	setFloat(&cfg.Constraints.BudgetWarnThreshold, "MERIDIAN_BUDGET_WARN_THRESHOLD")

	setString(&cfg.DecisionLog.Backend, "MERIDIAN_DECISION_LOG_BACKEND")
	setString(&cfg.DecisionLog.SQLitePath, "MERIDIAN_DECISION_LOG_SQLITE_PATH")
	setDuration(&cfg.DecisionLog.SQLiteBusyTimeout, "MERIDIAN_DECISION_LOG_SQLITE_BUSY_TIMEOUT")

	setBool(&cfg.Reporting.Enabled, "MERIDIAN_REPORTING_ENABLED")
	setString(&cfg.Reporting.Schedule, "MERIDIAN_REPORTING_SCHEDULE")

	setBool(&cfg.Metrics.Enabled, "MERIDIAN_METRICS_ENABLED")
	setString(&cfg.Metrics.ListenAddress, "MERIDIAN_METRICS_LISTEN_ADDRESS")
}

func setString(dst *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func setBool(dst *bool, key string) {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			*dst = parsed
		}
	}
}

func setInt(dst *int, key string) {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			*dst = parsed
		}
	}
}

func setFloat(dst *float64, key string) {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			*dst = parsed
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			*dst = parsed
		}
	}
}
