package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"resume-tailor-service/internal/entity"
)

// Repository port (implementation: postgresql.JobRepository).
type JobRepository interface {
	Create(ctx context.Context, typ entity.JobType, originalResume, jobDescription string) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)
}

// ValidationError rejects a submission before any state is created.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

type JobService struct {
	repo JobRepository
}

func NewJobService(repo JobRepository) *JobService {
	return &JobService{repo: repo}
}

type SubmitJobRequest struct {
	Type           string
	OriginalResume string
	JobDescription string
}

func (s *JobService) SubmitJob(ctx context.Context, req SubmitJobRequest) (uuid.UUID, error) {
	if strings.TrimSpace(req.OriginalResume) == "" {
		return uuid.Nil, &ValidationError{Field: "original_resume", Reason: "is required"}
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		return uuid.Nil, &ValidationError{Field: "job_description", Reason: "is required"}
	}
	if strings.TrimSpace(req.Type) == "" {
		return uuid.Nil, &ValidationError{Field: "job_type", Reason: "is required"}
	}

	typ, err := entity.ParseJobType(req.Type)
	if err != nil {
		return uuid.Nil, &ValidationError{Field: "job_type", Reason: err.Error()}
	}

	return s.repo.Create(ctx, typ, req.OriginalResume, req.JobDescription)
}

func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	return s.repo.GetByID(ctx, id)
}
