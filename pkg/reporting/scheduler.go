package reporting

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a Reporter on a cron schedule.
type Scheduler struct {
	reporter *Reporter
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler running the reporter on the given
// standard cron expression.
func NewScheduler(reporter *Reporter, schedule string) *Scheduler {
	return &Scheduler{
		reporter: reporter,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "reporting.scheduler"),
	}
}

// Start validates the schedule and begins running snapshots. The
// scheduler stops itself when the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}
	if s.schedule == "" {
		s.logger.Info("report schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.runSnapshot(ctx)
	}); err != nil {
		return fmt.Errorf("scheduling snapshots: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("report scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Scheduler) runSnapshot(ctx context.Context) {
	snapshot, err := s.reporter.Run(ctx)
	if err != nil {
		s.logger.Error("scheduled snapshot failed", "error", err)
		return
	}
	s.logger.Debug("scheduled snapshot completed", "reports", len(snapshot.Reports))
}

// Stop halts the scheduler and waits for a running snapshot to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info("report scheduler stopped")
}

// IsRunning reports whether the scheduler is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled snapshot time, or nil when nothing
// is scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
