package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AbdulWasayUl/go-world-clock/internal/logger"
	"github.com/go-co-op/gocron"
)

// Refresher is anything that can rebuild cached state on a schedule.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type Scheduler struct {
	Cron *gocron.Scheduler
	mu   sync.Mutex
}

func New() (*Scheduler, error) {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		Cron: s,
	}, nil
}

// StartJob refreshes every job once per interval, starting one interval from now.
func (s *Scheduler) StartJob(ctx context.Context, interval time.Duration, jobs []Refresher) error {
	if interval <= 0 {
		return errors.New("scheduler: interval must be positive")
	}

	_, err := s.Cron.Every(interval).WaitForSchedule().Do(func() {
		s.runAllJobs(ctx, jobs)
	})
	if err != nil {
		logger.Error("Failed to schedule job: %v", err)
		return err
	}

	s.Cron.StartAsync()
	return nil
}

func (s *Scheduler) runAllJobs(ctx context.Context, jobs []Refresher) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Info("--- Catalog Refresh Started ---")
	defer logger.Info("--- Catalog Refresh Finished ---")

	failed := 0
	for _, job := range jobs {
		if err := job.Refresh(ctx); err != nil {
			failed++
			logger.Error("Error refreshing: %v", err)
		}
	}
	return failed
}

// RunImmediateJob runs every job once synchronously and reports how many failed.
func (s *Scheduler) RunImmediateJob(ctx context.Context, jobs []Refresher) int {
	logger.Info("--- Immediate Refresh Job Started ---")
	defer logger.Info("--- Immediate Refresh Job Finished ---")

	return s.runAllJobs(ctx, jobs)
}

func (s *Scheduler) Stop() {
	s.Cron.Stop()
}
