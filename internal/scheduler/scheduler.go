// Package scheduler runs the nightly revenue snapshot job.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"bengkel/internal/domain/reports"
	"bengkel/pkg/logger"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	reports  *reports.Service
	schedule string
	loc      *time.Location
}

// New creates a scheduler. The schedule is a standard 5-field cron
// expression evaluated in the given location.
func New(reportsSvc *reports.Service, schedule string, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		reports:  reportsSvc,
		schedule: schedule,
		loc:      loc,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.snapshotYesterday); err != nil {
		return err
	}
	s.cron.Start()
	logger.Info(context.Background(), "scheduler started",
		"schedule", s.schedule,
		"timezone", s.loc.String(),
	)
	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info(context.Background(), "scheduler stopped")
}

// snapshotYesterday writes the snapshot for the previous calendar day.
// The job runs shortly after midnight, so "yesterday" is the day that
// just closed.
func (s *Scheduler) snapshotYesterday() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	day := time.Now().In(s.loc).AddDate(0, 0, -1)

	snap, err := s.reports.SnapshotDay(ctx, day)
	if err != nil {
		logger.Error(ctx, "daily snapshot failed",
			"day", day.Format("2006-01-02"),
			"error", err,
		)
		return
	}

	logger.Info(ctx, "daily snapshot written",
		"day", snap.Date,
		"orders", snap.Orders,
		"grand_total", snap.GrandTotal.String(),
	)
}
