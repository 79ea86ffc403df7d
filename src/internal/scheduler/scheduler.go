package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/jobs"
	"github.com/api-sage/somaluganda-remit/src/internal/logger"
	"github.com/robfig/cron/v3"
)

type Schedule struct {
	AdminDigest string
}

// Scheduler runs the periodic jobs on a UTC, seconds-precision cron.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

func NewScheduler(jobRunner *jobs.JobRunner, schedule Schedule) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}
	if err := s.registerJobs(schedule); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs skips a job whose spec is empty.
func (s *Scheduler) registerJobs(schedule Schedule) error {
	if spec := strings.TrimSpace(schedule.AdminDigest); spec != "" {
		if _, err := s.cron.AddFunc(spec, s.jobs.SendAdminDigest); err != nil {
			return fmt.Errorf("register admin digest job %q: %w", spec, err)
		}
	}

	logger.Info("cron jobs registered", logger.Fields{"count": len(s.cron.Entries())})
	return nil
}

func (s *Scheduler) Start() {
	logger.Info("starting cron scheduler", nil)
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	logger.Info("stopping cron scheduler", nil)
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("cron scheduler stopped", nil)
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
