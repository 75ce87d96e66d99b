package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"resume-tailor-service/internal/entity"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrAlreadyFinished is returned when a terminal write targets a job
	// that has already left the pending state. The first result always wins.
	ErrAlreadyFinished = errors.New("job already finished")
)

type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

const jobColumns = `id, job_type, status, original_resume, job_description,
COALESCE(result, ''), COALESCE(error_message, ''), created_at, updated_at`

func (r *JobRepository) Create(ctx context.Context, typ entity.JobType, originalResume, jobDescription string) (uuid.UUID, error) {
	const q = `
INSERT INTO jobs (job_type, status, original_resume, job_description)
VALUES ($1, 'pending', $2, $3)
RETURNING id;
`
	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, q, string(typ), originalResume, jobDescription).Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	const q = `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1;`

	job, err := scanJob(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

// ListPending returns all jobs still waiting for a worker, oldest first so
// long-queued jobs are never starved by new arrivals.
func (r *JobRepository) ListPending(ctx context.Context) ([]entity.Job, error) {
	const q = `SELECT ` + jobColumns + ` FROM jobs WHERE status = 'pending' ORDER BY created_at, id;`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []entity.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// SetResult moves a job to its terminal state. The update is conditional on
// the job still being pending, which makes the terminal write atomic and
// effectively once: a duplicate write observes zero affected rows and is
// reported as ErrAlreadyFinished instead of overwriting the first result.
func (r *JobRepository) SetResult(ctx context.Context, id uuid.UUID, outcome entity.Outcome) error {
	const q = `
UPDATE jobs
SET status = $2,
    result = NULLIF($3, ''),
    error_message = NULLIF($4, ''),
    updated_at = now()
WHERE id = $1 AND status = 'pending';
`
	tag, err := r.pool.Exec(ctx, q, id, string(outcome.Status()), outcome.Result(), outcome.ErrorMessage())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		job, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return getErr
		}
		if job.Terminal() {
			return ErrAlreadyFinished
		}
		return ErrNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (*entity.Job, error) {
	var (
		job        entity.Job
		typeText   string
		statusText string
	)
	if err := row.Scan(
		&job.ID,
		&typeText,
		&statusText,
		&job.OriginalResume,
		&job.JobDescription,
		&job.Result,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}
	job.Type = entity.JobType(typeText)
	job.Status = entity.JobStatus(statusText)
	return &job, nil
}
