// Package scheduler runs the deadline sweep on a fixed cadence. The sweep
// can also be triggered over HTTP by an external cron with a shared secret;
// both paths call the same workflow code and the sweep's 24-hour dedup
// keeps the two from double-notifying.
package scheduler

import (
	"fmt"
	"time"

	"github.com/crewly-dev/crewly/internal/workflow"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Scheduler struct {
	cron    *cron.Cron
	sweeper *workflow.SweepService
}

func New(sweeper *workflow.SweepService) *Scheduler {
	return &Scheduler{cron: cron.New(), sweeper: sweeper}
}

// Start schedules the sweep every interval. Intervals above 24h defeat the
// sweep's dedup window, so anything non-positive falls back to hourly.
func (s *Scheduler) Start(interval time.Duration) error {
	if interval <= 0 {
		interval = time.Hour
	}

	spec := fmt.Sprintf("@every %s", interval)
	if _, err := s.cron.AddFunc(spec, s.runSweep); err != nil {
		return err
	}

	s.cron.Start()
	zap.L().Info("deadline sweep scheduled", zap.Duration("interval", interval))
	return nil
}

// Stop halts the cron and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.L().Info("deadline sweep scheduler stopped")
}

func (s *Scheduler) runSweep() {
	result, err := s.sweeper.Run(time.Now())
	if err != nil {
		zap.L().Error("deadline sweep failed", zap.Error(err))
		return
	}

	zap.L().Info("deadline sweep finished",
		zap.Int("soon_projects", result.SoonProjects),
		zap.Int("overdue_projects", result.OverdueProjects),
		zap.Int("notifications", result.Notified))
}
