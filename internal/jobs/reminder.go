package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/claims_app/internal/core/ports/services"
	"github.com/SscSPs/claims_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// sweepTimeout bounds a single reminder run.
const sweepTimeout = 5 * time.Minute

// ReminderScheduler runs the reminder sweep on a cron schedule.
type ReminderScheduler struct {
	cron     *cron.Cron
	reminder portssvc.ReminderSvc
	logger   *slog.Logger
}

// NewReminderScheduler registers the sweep under schedule (standard 5-field cron syntax).
func NewReminderScheduler(schedule string, reminder portssvc.ReminderSvc, logger *slog.Logger) (*ReminderScheduler, error) {
	s := &ReminderScheduler{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		reminder: reminder,
		logger:   logger,
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins scheduling in the background.
func (s *ReminderScheduler) Start() {
	s.cron.Start()
	s.logger.Info("Reminder scheduler started")
}

// Stop stops scheduling and waits for a running sweep to finish or ctx to end.
func (s *ReminderScheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Reminder scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("Reminder scheduler stop timed out")
	}
}

// RunOnce performs a single sweep and returns how many reminders were sent.
func (s *ReminderScheduler) RunOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	logger := s.logger.With(slog.String("job", "reminder"), slog.String("run_id", uuid.NewString()))
	ctx = middleware.WithLogger(ctx, logger)

	start := time.Now()
	sent, err := s.reminder.SendReminders(ctx)
	if err != nil {
		logger.Error("Reminder sweep failed", slog.String("error", err.Error()), slog.Int("sent", sent))
		return sent
	}
	logger.Info("Reminder sweep completed", slog.Int("sent", sent), slog.Duration("duration", time.Since(start)))
	return sent
}
