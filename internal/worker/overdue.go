// Package worker runs scheduled maintenance jobs.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// overdueJobTimeout bounds one run of the overdue job.
const overdueJobTimeout = 2 * time.Minute

// OverdueMarker flags unpaid unit charges whose due date has passed.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler runs the overdue job on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	store  OverdueMarker
	now    func() time.Time
	logger *slog.Logger
}

// NewScheduler schedules the overdue job with spec, a standard cron
// expression or descriptor such as "@daily", evaluated in loc.
func NewScheduler(store OverdueMarker, spec string, loc *time.Location, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		store:  store,
		now:    time.Now,
		logger: logger,
	}

	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), overdueJobTimeout)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule overdue job %q: %w", spec, err)
	}
	return s, nil
}

// RunOnce marks overdue unit charges now and returns how many changed.
// Errors are logged; the next run retries.
func (s *Scheduler) RunOnce(ctx context.Context) int64 {
	s.logger.Info("Marking overdue unit charges...")
	n, err := s.store.MarkOverdue(ctx, s.now())
	if err != nil {
		s.logger.Error("Overdue job failed", "error", err)
		return 0
	}
	s.logger.Info("Overdue job complete", "marked", n)
	return n
}

// Run runs the job once, then on schedule until ctx is done. It waits for a
// running job to finish before returning.
func (s *Scheduler) Run(ctx context.Context) error {
	s.RunOnce(ctx)

	s.cron.Start()
	s.logger.Info("Scheduled overdue job", "entries", len(s.cron.Entries()))

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
	return nil
}
