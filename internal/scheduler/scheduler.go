// Package scheduler wires up the cron job that periodically fires a worker
// cycle, replacing any external trigger hitting POST /jobs/process.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"resume-tailor-service/internal/worker"
)

// Trigger is the worker-cycle entry point.
type Trigger interface {
	ProcessPending(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	trigger Trigger
	spec    string // cron spec, e.g. "@every 5s"
	logger  *zap.Logger
}

func New(trigger Trigger, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		trigger: trigger,
		spec:    fmt.Sprintf("@every %s", interval),
		logger:  logger,
	}
}

// Start registers the cycle and starts the cron loop. Also fires one cycle
// immediately so jobs queued while the process was down are not left waiting
// for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("spec", s.spec))

	go s.runCycle(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runCycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	processed, err := s.trigger.ProcessPending(ctx)
	if err != nil {
		if errors.Is(err, worker.ErrCycleRunning) {
			s.logger.Debug("previous worker cycle still running, skipping tick")
			return
		}
		s.logger.Error("worker cycle failed", zap.Error(err))
		return
	}

	if processed > 0 {
		s.logger.Info("scheduled cycle processed jobs", zap.Int("processed", processed))
	}
}
