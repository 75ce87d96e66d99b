package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"resume-tailor-service/internal/entity"
	"resume-tailor-service/internal/repository/postgresql"
	"resume-tailor-service/internal/service"
)

type fakeRepo struct {
	createCalled int
	lastType     entity.JobType
	lastResume   string
	lastJD       string

	createID  uuid.UUID
	createErr error
}

func (r *fakeRepo) Create(ctx context.Context, typ entity.JobType, originalResume, jobDescription string) (uuid.UUID, error) {
	r.createCalled++
	r.lastType = typ
	r.lastResume = originalResume
	r.lastJD = jobDescription
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	return r.createID, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	return nil, postgresql.ErrNotFound
}

func TestJobService_SubmitJob_Valid(t *testing.T) {
	ctx := context.Background()
	id := uuid.MustParse("66666666-6666-6666-6666-666666666666")

	repo := &fakeRepo{createID: id}
	svc := service.NewJobService(repo)

	got, err := svc.SubmitJob(ctx, service.SubmitJobRequest{
		Type:           "tailor",
		OriginalResume: "Engineer with 5 years...",
		JobDescription: "Seeking senior engineer...",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got != id {
		t.Fatalf("expected id=%s, got %s", id, got)
	}
	if repo.lastType != entity.TypeTailor {
		t.Fatalf("expected type=tailor, got %s", repo.lastType)
	}
	if repo.lastResume == "" || repo.lastJD == "" {
		t.Fatalf("expected inputs forwarded to repo, got resume=%q jd=%q", repo.lastResume, repo.lastJD)
	}
}

func TestJobService_SubmitJob_UnknownType(t *testing.T) {
	repo := &fakeRepo{createID: uuid.New()}
	svc := service.NewJobService(repo)

	_, err := svc.SubmitJob(context.Background(), service.SubmitJobRequest{
		Type:           "bogus",
		OriginalResume: "resume",
		JobDescription: "jd",
	})

	var vErr *service.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Field != "job_type" {
		t.Fatalf("expected job_type field, got %q", vErr.Field)
	}
	if repo.createCalled != 0 {
		t.Fatalf("no job must be created on invalid input, got %d creates", repo.createCalled)
	}
}

func TestJobService_SubmitJob_MissingFields(t *testing.T) {
	cases := []struct {
		name  string
		req   service.SubmitJobRequest
		field string
	}{
		{"empty resume", service.SubmitJobRequest{Type: "suggest", JobDescription: "jd"}, "original_resume"},
		{"empty jd", service.SubmitJobRequest{Type: "suggest", OriginalResume: "resume"}, "job_description"},
		{"blank type", service.SubmitJobRequest{Type: "   ", OriginalResume: "resume", JobDescription: "jd"}, "job_type"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepo{createID: uuid.New()}
			svc := service.NewJobService(repo)

			_, err := svc.SubmitJob(context.Background(), tc.req)

			var vErr *service.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, vErr.Field)
			}
			if repo.createCalled != 0 {
				t.Fatalf("no job must be created on invalid input")
			}
		})
	}
}

func TestJobService_SubmitJob_StoreFailure(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("connection refused")}
	svc := service.NewJobService(repo)

	_, err := svc.SubmitJob(context.Background(), service.SubmitJobRequest{
		Type:           "suggest",
		OriginalResume: "resume",
		JobDescription: "jd",
	})
	if err == nil {
		t.Fatal("expected error from repo to propagate")
	}
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		t.Fatalf("store failure must not be a ValidationError, got %v", err)
	}
}
