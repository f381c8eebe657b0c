package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
	if cfg.Source.Type != "file" || cfg.Source.Path != "./scenarios" {
		t.Errorf("source defaults = %+v", cfg.Source)
	}
	if cfg.Source.DebounceInterval != 100*time.Millisecond {
		t.Errorf("debounce default = %v", cfg.Source.DebounceInterval)
	}
	if cfg.Constraints.CapacitySoftThreshold != 0.9 {
		t.Errorf("capacity threshold default = %v", cfg.Constraints.CapacitySoftThreshold)
	}
	if cfg.Constraints.BudgetWarnThreshold != 0.8 {
		t.Errorf("budget warn default = %v", cfg.Constraints.BudgetWarnThreshold)
	}
	if cfg.DecisionLog.Backend != "memory" {
		t.Errorf("decision log backend default = %q", cfg.DecisionLog.Backend)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestApplyDefaultsPreservesValues(t *testing.T) {
	cfg := &Config{}
	cfg.Logging.Level = "debug"
	cfg.Source.Type = "git"
	cfg.Source.Git.Repository = "https://example.com/plans.git"
	cfg.Source.Git.Branch = "planning"

	ApplyDefaults(cfg)

	if cfg.Logging.Level != "debug" {
		t.Errorf("level overwritten to %q", cfg.Logging.Level)
	}
	if cfg.Source.Git.Branch != "planning" {
		t.Errorf("branch overwritten to %q", cfg.Source.Git.Branch)
	}
	if cfg.Source.Git.Timeout != DefaultGitTimeout {
		t.Errorf("git timeout not defaulted: %v", cfg.Source.Git.Timeout)
	}
}

func TestLoadConfig(t *testing.T) {
	doc := `
logging:
  level: debug
  format: json
source:
  type: file
  path: /tmp/scenarios
constraints:
  capacity_soft_threshold: 0.85
  budget_total_tokens: 500
decision_log:
  backend: sqlite
  sqlite_path: /tmp/decisions.db
reporting:
  enabled: true
  schedule: "*/5 * * * *"
metrics:
  enabled: true
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Constraints.CapacitySoftThreshold != 0.85 {
		t.Errorf("capacity threshold = %v", cfg.Constraints.CapacitySoftThreshold)
	}
	if cfg.Constraints.BudgetTotalTokens != 500 {
		t.Errorf("budget total = %d", cfg.Constraints.BudgetTotalTokens)
	}
	if cfg.DecisionLog.Backend != "sqlite" {
		t.Errorf("backend = %q", cfg.DecisionLog.Backend)
	}
	// Unset fields still get defaults.
	if cfg.Metrics.ListenAddress != DefaultMetricsListenAddress {
		t.Errorf("metrics address = %q", cfg.Metrics.ListenAddress)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MERIDIAN_LOG_LEVEL", "error")
	t.Setenv("MERIDIAN_BUDGET_TOTAL_TOKENS", "250")
	t.Setenv("MERIDIAN_REPORTING_ENABLED", "true")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides: %v", err)
	}

	if cfg.Logging.Level != "error" {
		t.Errorf("level = %q, want error", cfg.Logging.Level)
	}
	if cfg.Constraints.BudgetTotalTokens != 250 {
		t.Errorf("budget total = %d, want 250", cfg.Constraints.BudgetTotalTokens)
	}
	if !cfg.Reporting.Enabled {
		t.Error("reporting not enabled via env")
	}
}

func TestLoadConfigWithInvalidEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MERIDIAN_SOURCE_TYPE", "carrier-pigeon")

	_, err := LoadConfigWithEnvOverrides(path)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "shouty"
	cfg.Source.Type = "ftp"
	cfg.Constraints.CapacitySoftThreshold = 2.0
	cfg.DecisionLog.Backend = "parchment"
	cfg.Reporting.Enabled = true
	cfg.Reporting.Schedule = "not-cron"

	err := Validate(cfg)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Errors) != 5 {
		t.Errorf("got %d errors, want 5:\n%v", len(verr.Errors), err)
	}
}

func TestValidateGitSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source.Type = "git"

	err := Validate(cfg)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Errors[0].Field != "source.git.repository" {
		t.Errorf("field = %q", verr.Errors[0].Field)
	}

	cfg.Source.Git.Repository = "https://example.com/plans.git"
	if err := Validate(cfg); err != nil {
		t.Errorf("valid git source rejected: %v", err)
	}
}
