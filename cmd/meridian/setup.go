package main

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"helmline-hq/meridian/pkg/config"
	"helmline-hq/meridian/pkg/constraints"
	"helmline-hq/meridian/pkg/decisionlog"
	"helmline-hq/meridian/pkg/decisionlog/storage"
	"helmline-hq/meridian/pkg/governance"
	"helmline-hq/meridian/pkg/portfolio"
	"helmline-hq/meridian/pkg/portfolio/parser"
	"helmline-hq/meridian/pkg/telemetry/logging"
)

// loadConfiguration reads the config file named by --config. A missing
// file at the default location falls back to defaults so one-shot
// commands work without any configuration.
func loadConfiguration() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); err != nil {
		if os.IsNotExist(err) && !rootCmd.PersistentFlags().Changed("config") {
			return config.DefaultConfig(), nil
		}
		return nil, fmt.Errorf("accessing config file %q: %w", cfgFile, err)
	}
	return config.LoadConfigWithEnvOverrides(cfgFile)
}

// setupLogging installs the process logger from the configuration. The
// --verbose flag forces debug level.
func setupLogging(cfg *config.Config) error {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	_, err := logging.Setup(logging.Config{
		Level:     level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	return err
}

// buildEngine assembles the governance engine from the configuration.
// The returned cleanup closes the durable decision log storage, when
// one is configured.
func buildEngine(cfg *config.Config, opts ...governance.EngineOption) (*governance.Engine, *decisionlog.Log, func(), error) {
	registry := constraints.DefaultRegistry(
		constraints.CapacityConfig{SoftThreshold: cfg.Constraints.CapacitySoftThreshold},
		constraints.BudgetConfig{
			TotalTokens:   cfg.Constraints.BudgetTotalTokens,
			PerItemTokens: cfg.Constraints.BudgetPerItemTokens,
			WarnThreshold: cfg.Constraints.BudgetWarnThreshold,
		},
	)

	cleanup := func() {}
	var logOpts []decisionlog.Option
	if cfg.DecisionLog.Backend == "sqlite" {
		sqliteCfg := storage.DefaultSQLiteConfig()
		sqliteCfg.Path = cfg.DecisionLog.SQLitePath
		sqliteCfg.BusyTimeout = cfg.DecisionLog.SQLiteBusyTimeout
		store, err := storage.NewSQLiteStorage(sqliteCfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening decision log storage: %w", err)
		}
		logOpts = append(logOpts, decisionlog.WithStorage(store))
		cleanup = func() { store.Close() }
	}

	log := decisionlog.New(logOpts...)
	engine, err := governance.New(constraints.NewValidator(registry), log, opts...)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return engine, log, cleanup, nil
}

// loadScenario parses one scenario file.
func loadScenario(path string) (*portfolio.Scenario, error) {
	return parser.NewParser().Parse(path)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// readYAMLFile decodes a YAML file into dst with unknown fields
// rejected.
func readYAMLFile(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsing %q: %w", path, err)
	}
	return nil
}
