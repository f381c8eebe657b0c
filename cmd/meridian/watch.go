package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"helmline-hq/meridian/pkg/config"
	"helmline-hq/meridian/pkg/governance"
	"helmline-hq/meridian/pkg/reporting"
	"helmline-hq/meridian/pkg/scenario/source"
	"helmline-hq/meridian/pkg/telemetry/metrics"
)

// gitPollInterval is how often the watch command pulls a git-backed
// scenario source when watching is enabled.
const gitPollInterval = time.Minute

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the long-lived governance service",
	Long: `Watch the configured scenario source and serve continuous portfolio
health. On every scenario change a fresh snapshot is computed. Scheduled
reporting and the Prometheus metrics endpoint run according to the
configuration.

Examples:
  meridian watch --config config.yaml
  MERIDIAN_SOURCE_PATH=scenarios/ meridian watch`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}
	logger := slog.Default().With("component", "watch")

	cmd.SilenceUsage = true

	var engineOpts []governance.EngineOption
	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(metrics.Config{
			Enabled:   true,
			Namespace: cfg.Metrics.Namespace,
			Subsystem: cfg.Metrics.Subsystem,
		}, nil)
		engineOpts = append(engineOpts, governance.WithObserver(collector))
	}

	engine, _, cleanup, err := buildEngine(cfg, engineOpts...)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, gitSrc, err := buildSource(ctx, cfg)
	if err != nil {
		return err
	}

	var reporterOpts []reporting.ReporterOption
	if collector != nil {
		reporterOpts = append(reporterOpts, reporting.WithUtilizationSink(collector))
	}
	reporter, err := reporting.NewReporter(engine, src, reporterOpts...)
	if err != nil {
		return err
	}

	snapshot := func() {
		if _, err := reporter.Run(ctx); err != nil {
			logger.Error("snapshot failed", "error", err)
		}
	}

	// Baseline snapshot before any change arrives.
	snapshot()

	if cfg.Reporting.Enabled {
		scheduler := reporting.NewScheduler(reporter, cfg.Reporting.Schedule)
		if err := scheduler.Start(ctx); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	var metricsSrv *http.Server
	if collector != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		metricsSrv = &http.Server{
			Addr:              cfg.Metrics.ListenAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("metrics endpoint listening", "address", cfg.Metrics.ListenAddress)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics endpoint failed", "error", err)
			}
		}()
	}

	if cfg.Source.Watch {
		switch {
		case gitSrc != nil:
			go pollGitSource(ctx, gitSrc, logger, snapshot)
		default:
			fileSrc := src.(*source.FileSource)
			watcherCfg := source.DefaultWatcherConfig(fileSrc.Path())
			if cfg.Source.DebounceInterval > 0 {
				watcherCfg.DebounceInterval = cfg.Source.DebounceInterval
			}
			watcher, err := source.NewWatcher(watcherCfg)
			if err != nil {
				return err
			}
			defer watcher.Stop()
			go func() {
				if err := watcher.Watch(ctx, func() error {
					snapshot()
					return nil
				}); err != nil {
					logger.Error("scenario watcher failed", "error", err)
				}
			}()
		}
	}

	logger.Info("governance service started", "source", src.Describe())
	<-ctx.Done()
	logger.Info("shutting down")

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics endpoint shutdown failed", "error", err)
		}
	}
	return nil
}

// buildSource constructs the configured scenario source. The second
// return value is non-nil only for the git backend, which needs polling
// instead of filesystem watching.
func buildSource(ctx context.Context, cfg *config.Config) (source.Source, *source.GitSource, error) {
	switch cfg.Source.Type {
	case "git":
		gitSrc, err := source.NewGitSource(source.GitConfig{
			Repository: cfg.Source.Git.Repository,
			Branch:     cfg.Source.Git.Branch,
			Path:       cfg.Source.Git.Path,
			LocalPath:  cfg.Source.Git.LocalPath,
			Depth:      cfg.Source.Git.Depth,
			Timeout:    cfg.Source.Git.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := gitSrc.Open(ctx); err != nil {
			return nil, nil, err
		}
		return gitSrc, gitSrc, nil
	default:
		fileSrc, err := source.NewFileSource(cfg.Source.Path)
		if err != nil {
			return nil, nil, err
		}
		return fileSrc, nil, nil
	}
}

// pollGitSource pulls the scenario repository on an interval and runs a
// snapshot whenever HEAD moves.
func pollGitSource(ctx context.Context, src *source.GitSource, logger *slog.Logger, snapshot func()) {
	ticker := time.NewTicker(gitPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			changed, err := src.Refresh(ctx)
			if err != nil {
				logger.Error("scenario repository refresh failed", "error", err)
				continue
			}
			if changed {
				if commit, err := src.CurrentCommit(); err == nil {
					logger.Info("scenario repository updated",
						"sha", commit.SHA, "author", commit.Author)
				}
				snapshot()
			}
		}
	}
}
