// Package worker drains pending jobs from the store and moves each one to a
// terminal state through the configured generation backend. One call to
// ProcessPending is one full cycle; scheduling cycles is the caller's job.
package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"resume-tailor-service/internal/entity"
	"resume-tailor-service/internal/llm"
	"resume-tailor-service/internal/logger"
	"resume-tailor-service/internal/repository/postgresql"
	"resume-tailor-service/internal/service"
)

// ErrCycleRunning is returned when another worker cycle already holds the
// cycle lock; the caller should simply try again later.
var ErrCycleRunning = errors.New("worker cycle already running")

// Stored error messages are capped so an upstream failure never bloats the
// job record.
const maxErrorMessageLen = 500

type JobRepo interface {
	ListPending(ctx context.Context) ([]entity.Job, error)
	SetResult(ctx context.Context, id uuid.UUID, outcome entity.Outcome) error
}

type Worker struct {
	repo        JobRepo
	invoker     llm.Invoker
	lock        service.CycleLock
	concurrency int
	logger      *zap.Logger
}

func New(repo JobRepo, invoker llm.Invoker, lock service.CycleLock, concurrency int, log *zap.Logger) *Worker {
	if concurrency <= 0 {
		concurrency = 4
	}
	if lock == nil {
		lock = service.NopCycleLock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Worker{
		repo:        repo,
		invoker:     invoker,
		lock:        lock,
		concurrency: concurrency,
		logger:      log,
	}
}

// ProcessPending runs one worker cycle: fetch every pending job and drive
// each to complete or error. Jobs are independent, so they run concurrently
// up to the configured limit; one job failing, for any reason, never stops
// the rest of the batch. Returns the number of jobs attempted.
func (w *Worker) ProcessPending(ctx context.Context) (int, error) {
	ok, err := w.lock.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrCycleRunning
	}
	defer func() {
		if err := w.lock.Release(context.WithoutCancel(ctx)); err != nil {
			w.logger.Warn("release cycle lock", zap.Error(err))
		}
	}()

	jobs, err := w.repo.ListPending(ctx)
	if err != nil {
		return 0, err
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	w.logger.Info("worker cycle started", zap.Int("pending", len(jobs)))

	var processed atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(w.concurrency)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			w.processJob(ctx, job)
			processed.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	n := int(processed.Load())
	w.logger.Info("worker cycle finished", zap.Int("processed", n))
	return n, nil
}

// processJob is one isolated unit of work. Every failure path collapses
// into an Outcome value; nothing escapes to the batch.
func (w *Worker) processJob(ctx context.Context, job entity.Job) {
	start := time.Now()

	outcome := w.generate(ctx, job)

	if err := w.repo.SetResult(ctx, job.ID, outcome); err != nil {
		if errors.Is(err, postgresql.ErrAlreadyFinished) {
			// Lost a race with an earlier cycle's in-flight write.
			// The first terminal result stands.
			w.logger.Warn("job already finished, dropping duplicate result",
				zap.String("job_id", job.ID.String()),
			)
			return
		}
		w.logger.Error("store terminal result",
			zap.String("job_id", job.ID.String()),
			zap.Error(err),
		)
		return
	}

	w.logger.Info("job processed",
		zap.String("job_id", job.ID.String()),
		zap.String("job_type", string(job.Type)),
		zap.String("status", string(outcome.Status())),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
}

func (w *Worker) generate(ctx context.Context, job entity.Job) entity.Outcome {
	text, err := w.invoker.Generate(ctx, job.Type, job.OriginalResume, job.JobDescription)
	if err != nil {
		return entity.Failed(logger.Truncate(err.Error(), maxErrorMessageLen))
	}
	return entity.Completed(text)
}
