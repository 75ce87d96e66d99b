// Package poller implements the client-side polling loop as an explicit
// state machine, independent of any UI framework. A UI or CLI drives it and
// observes transitions through a callback; the machine itself is
// single-threaded and suspends only at its own timer boundaries.
package poller

import (
	"context"
	"time"

	"resume-tailor-service/internal/apiclient"
	"resume-tailor-service/internal/entity"
)

type State int

const (
	Idle State = iota
	Submitting
	Polling
	Succeeded
	Failed
	TimedOut
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Polling:
		return "polling"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case TimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Terminal reports whether the machine has resolved for the active job.
func (s State) Terminal() bool {
	return s == Succeeded || s == Failed || s == TimedOut
}

// API is the subset of the job endpoints the poller needs.
type API interface {
	SubmitJob(ctx context.Context, req apiclient.SubmitJobRequest) (string, error)
	JobStatus(ctx context.Context, jobID string) (apiclient.JobStatusResponse, error)
}

type Config struct {
	MaxAttempts int
	Interval    time.Duration
}

// Update is the observable snapshot delivered after every transition.
type Update struct {
	State    State
	JobID    string
	Progress int // 0..100
	Result   string
	Message  string
}

type Poller struct {
	api      API
	cfg      Config
	onUpdate func(Update)

	// sleep is injectable so tests never wait on real timers.
	sleep func(ctx context.Context, d time.Duration) error

	state    State
	jobID    string
	attempt  int
	progress int
	result   string
	message  string
}

func New(a API, cfg Config, onUpdate func(Update)) *Poller {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 30
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if onUpdate == nil {
		onUpdate = func(Update) {}
	}
	return &Poller{
		api:      a,
		cfg:      cfg,
		onUpdate: onUpdate,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (p *Poller) State() State { return p.state }

// Reset returns the machine to Idle and clears progress, ready for a new
// submission.
func (p *Poller) Reset() {
	p.state = Idle
	p.jobID = ""
	p.attempt = 0
	p.progress = 0
	p.result = ""
	p.message = ""
	p.publish()
}

// Submit sends a new job and enters Polling on success. Submitting a new job
// invalidates any in-flight poll loop for a previous one: the active job id
// changes, and stale tick results are discarded against it.
func (p *Poller) Submit(ctx context.Context, req apiclient.SubmitJobRequest) {
	p.state = Submitting
	p.jobID = ""
	p.attempt = 0
	p.progress = 0
	p.result = ""
	p.message = ""
	p.publish()

	id, err := p.api.SubmitJob(ctx, req)
	if err != nil {
		p.state = Failed
		p.message = err.Error()
		p.publish()
		return
	}

	p.jobID = id
	p.state = Polling
	p.publish()
}

// Tick performs one poll attempt for the active job. A no-op unless the
// machine is in Polling. Results belonging to a job that is no longer the
// active one (the caller re-submitted mid-fetch) are dropped.
func (p *Poller) Tick(ctx context.Context) {
	if p.state != Polling {
		return
	}

	jobID := p.jobID
	p.attempt++
	p.progress = progressFor(p.attempt, p.cfg.MaxAttempts)

	status, err := p.api.JobStatus(ctx, jobID)

	if p.jobID != jobID || p.state != Polling {
		// stale response for a superseded job
		return
	}

	if err != nil {
		p.state = Failed
		p.message = err.Error()
		p.publish()
		return
	}

	switch entity.JobStatus(status.Status) {
	case entity.StatusComplete:
		p.state = Succeeded
		p.result = status.Result
		p.progress = 100
	case entity.StatusError:
		p.state = Failed
		p.message = status.ErrorMessage
	default:
		if p.attempt >= p.cfg.MaxAttempts {
			p.state = TimedOut
			p.message = "timed out waiting for the job to finish; it may still complete in the background"
		}
	}
	p.publish()
}

// Run drives the machine to a terminal state: submit, then poll at the
// configured interval until resolution or the attempt budget runs out. The
// final Update is returned; the machine always resolves to Succeeded,
// Failed, or TimedOut.
func (p *Poller) Run(ctx context.Context, req apiclient.SubmitJobRequest) Update {
	p.Submit(ctx, req)

	for p.state == Polling {
		if err := p.sleep(ctx, p.cfg.Interval); err != nil {
			p.state = Failed
			p.message = err.Error()
			p.publish()
			break
		}
		p.Tick(ctx)
	}

	return p.snapshot()
}

func progressFor(attempt, maxAttempts int) int {
	pct := attempt * 100 / maxAttempts
	if pct > 100 {
		pct = 100
	}
	return pct
}

func (p *Poller) snapshot() Update {
	return Update{
		State:    p.state,
		JobID:    p.jobID,
		Progress: p.progress,
		Result:   p.result,
		Message:  p.message,
	}
}

func (p *Poller) publish() {
	p.onUpdate(p.snapshot())
}
