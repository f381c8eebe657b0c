package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError is a validation error for one configuration field.
type FieldError struct {
	// Field is the dotted path to the field, e.g. "source.type".
	Field string

	// Message describes the problem.
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError aggregates all field errors found in one Validate
// pass.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// Validate checks the configuration and returns a ValidationError
// listing every problem found, or nil when the configuration is valid.
func Validate(cfg *Config) error {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, FieldError{"logging.level", fmt.Sprintf("unknown level %q", cfg.Logging.Level)})
	}
	switch cfg.Logging.Format {
	case "", "text", "json":
	default:
		errs = append(errs, FieldError{"logging.format", fmt.Sprintf("unknown format %q", cfg.Logging.Format)})
	}

	switch cfg.Source.Type {
	case "file":
		if cfg.Source.Path == "" {
			errs = append(errs, FieldError{"source.path", "path is required for the file source"})
		}
	case "git":
		if cfg.Source.Git.Repository == "" {
			errs = append(errs, FieldError{"source.git.repository", "repository is required for the git source"})
		}
		if cfg.Source.Git.Branch == "" {
			errs = append(errs, FieldError{"source.git.branch", "branch cannot be empty"})
		}
	default:
		errs = append(errs, FieldError{"source.type", fmt.Sprintf("unknown source type %q", cfg.Source.Type)})
	}

	if t := cfg.Constraints.CapacitySoftThreshold; t < 0 || t > 1 {
		errs = append(errs, FieldError{"constraints.capacity_soft_threshold",
			fmt.Sprintf("must be within [0, 1], got %g", t)})
	}
	if t := cfg.Constraints.BudgetWarnThreshold; t < 0 || t > 1 {
		errs = append(errs, FieldError{"constraints.budget_warn_threshold",
			fmt.Sprintf("must be within [0, 1], got %g", t)})
	}
	if cfg.Constraints.BudgetTotalTokens < 0 {
		errs = append(errs, FieldError{"constraints.budget_total_tokens", "cannot be negative"})
	}
	if cfg.Constraints.BudgetPerItemTokens < 0 {
		errs = append(errs, FieldError{"constraints.budget_per_item_tokens", "cannot be negative"})
	}

	switch cfg.DecisionLog.Backend {
	case "", "memory":
	case "sqlite":
		if cfg.DecisionLog.SQLitePath == "" {
			errs = append(errs, FieldError{"decision_log.sqlite_path", "path is required for the sqlite backend"})
		}
	default:
		errs = append(errs, FieldError{"decision_log.backend",
			fmt.Sprintf("unknown backend %q", cfg.DecisionLog.Backend)})
	}

	if cfg.Reporting.Enabled {
		if _, err := cron.ParseStandard(cfg.Reporting.Schedule); err != nil {
			errs = append(errs, FieldError{"reporting.schedule",
				fmt.Sprintf("invalid cron expression %q: %v", cfg.Reporting.Schedule, err)})
		}
	}

	if cfg.Metrics.Enabled && cfg.Metrics.ListenAddress == "" {
		errs = append(errs, FieldError{"metrics.listen_address", "listen address is required when metrics are enabled"})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
