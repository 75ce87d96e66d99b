package httptransport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resume-tailor-service/internal/entity"
	"resume-tailor-service/internal/repository/postgresql"
	"resume-tailor-service/internal/service"
	httptransport "resume-tailor-service/internal/transport/http"
	"resume-tailor-service/internal/worker"
)

// ---- fakes ----

type repoWithJobs struct {
	nextID uuid.UUID
	jobs   map[uuid.UUID]*entity.Job
}

func newRepoWithJobs(nextID uuid.UUID) *repoWithJobs {
	return &repoWithJobs{nextID: nextID, jobs: map[uuid.UUID]*entity.Job{}}
}

func (r *repoWithJobs) Create(ctx context.Context, typ entity.JobType, originalResume, jobDescription string) (uuid.UUID, error) {
	now := time.Now().UTC()
	r.jobs[r.nextID] = &entity.Job{
		ID:             r.nextID,
		Type:           typ,
		Status:         entity.StatusPending,
		OriginalResume: originalResume,
		JobDescription: jobDescription,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return r.nextID, nil
}

func (r *repoWithJobs) GetByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, postgresql.ErrNotFound
	}
	return j, nil
}

type processorStub struct {
	processed int
	err       error
	calls     int
}

func (p *processorStub) ProcessPending(ctx context.Context) (int, error) {
	p.calls++
	return p.processed, p.err
}

// ---- helpers ----

func newTestRouter(repo service.JobRepository, proc httptransport.PendingProcessor) http.Handler {
	svc := service.NewJobService(repo)
	h := httptransport.NewHandler(svc, proc)
	return httptransport.Routes(h, zap.NewNop())
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ---- tests ----

func TestHTTP_SubmitJob_200_AndImmediatelyPending(t *testing.T) {
	id := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	repo := newRepoWithJobs(id)
	router := newTestRouter(repo, &processorStub{})

	body := `{"job_type":"tailor","original_resume":"Engineer with 5 years...","job_description":"Seeking senior engineer..."}`
	rr := postJSON(t, router, "/jobs", body)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", rr.Code, rr.Body.String())
	}

	var resp struct {
		JobID string `json:"jobId"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	if resp.JobID != id.String() {
		t.Fatalf("expected jobId=%s, got %s", id.String(), resp.JobID)
	}

	// a just-submitted job is immediately observable as pending
	req := httptest.NewRequest(http.MethodGet, "/jobs/"+resp.JobID, nil)
	rr2 := httptest.NewRecorder()
	router.ServeHTTP(rr2, req)

	if rr2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", rr2.Code, rr2.Body.String())
	}

	var status map[string]any
	if err := json.Unmarshal(rr2.Body.Bytes(), &status); err != nil {
		t.Fatalf("invalid json: %v, body=%s", err, rr2.Body.String())
	}
	if status["status"] != "pending" {
		t.Fatalf("expected status=pending, got %v", status["status"])
	}
}

func TestHTTP_SubmitJob_400_UnknownType_NoJobCreated(t *testing.T) {
	repo := newRepoWithJobs(uuid.New())
	router := newTestRouter(repo, &processorStub{})

	rr := postJSON(t, router, "/jobs", `{"job_type":"bogus","original_resume":"r","job_description":"jd"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d, body=%s", rr.Code, rr.Body.String())
	}
	if len(repo.jobs) != 0 {
		t.Fatalf("expected no job created, got %d", len(repo.jobs))
	}
}

func TestHTTP_SubmitJob_400_MissingField(t *testing.T) {
	repo := newRepoWithJobs(uuid.New())
	router := newTestRouter(repo, &processorStub{})

	rr := postJSON(t, router, "/jobs", `{"job_type":"suggest","original_resume":"r"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d, body=%s", rr.Code, rr.Body.String())
	}
}

func TestHTTP_SubmitJob_400_InvalidJSON(t *testing.T) {
	router := newTestRouter(newRepoWithJobs(uuid.New()), &processorStub{})

	rr := postJSON(t, router, "/jobs", `{not json`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHTTP_GetJobStatus_404_UnknownID(t *testing.T) {
	router := newTestRouter(newRepoWithJobs(uuid.New()), &processorStub{})

	req := httptest.NewRequest(http.MethodGet, "/jobs/"+uuid.NewString(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d, body=%s", rr.Code, rr.Body.String())
	}
}

func TestHTTP_GetJobStatus_TerminalJobIsStable(t *testing.T) {
	id := uuid.MustParse("55555555-5555-5555-5555-555555555555")
	repo := newRepoWithJobs(id)
	repo.jobs[id] = &entity.Job{
		ID:     id,
		Type:   entity.TypeSuggest,
		Status: entity.StatusComplete,
		Result: "Add a bullet about Kubernetes.",
	}
	router := newTestRouter(repo, &processorStub{})

	var first string
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/jobs/"+id.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if i == 0 {
			first = rr.Body.String()
			continue
		}
		if rr.Body.String() != first {
			t.Fatalf("status output changed between reads:\n%s\nvs\n%s", first, rr.Body.String())
		}
	}

	var resp map[string]any
	if err := json.Unmarshal([]byte(first), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "complete" || resp["result"] == "" {
		t.Fatalf("unexpected terminal payload: %s", first)
	}
}

func TestHTTP_ProcessJobs_200_ReturnsProcessedCount(t *testing.T) {
	proc := &processorStub{processed: 3}
	router := newTestRouter(newRepoWithJobs(uuid.New()), proc)

	rr := postJSON(t, router, "/jobs/process", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Processed int `json:"processed"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Processed != 3 {
		t.Fatalf("expected processed=3, got %d", resp.Processed)
	}
	if proc.calls != 1 {
		t.Fatalf("expected exactly one cycle, got %d", proc.calls)
	}
}

func TestHTTP_ProcessJobs_409_WhenCycleRunning(t *testing.T) {
	proc := &processorStub{err: worker.ErrCycleRunning}
	router := newTestRouter(newRepoWithJobs(uuid.New()), proc)

	rr := postJSON(t, router, "/jobs/process", "")

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d, body=%s", rr.Code, rr.Body.String())
	}
}

func TestHTTP_ProcessJobs_500_OnStoreFailure(t *testing.T) {
	proc := &processorStub{err: errors.New("pg down")}
	router := newTestRouter(newRepoWithJobs(uuid.New()), proc)

	rr := postJSON(t, router, "/jobs/process", "")

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d, body=%s", rr.Code, rr.Body.String())
	}
}

func TestHTTP_Score_200(t *testing.T) {
	router := newTestRouter(newRepoWithJobs(uuid.New()), &processorStub{})

	body := `{"original_resume":"Go engineer, Kubernetes, Postgres","job_description":"Seeking Go engineer with Kubernetes"}`
	rr := postJSON(t, router, "/score", body)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Percentage   int      `json:"percentage"`
		MatchedTerms []string `json:"matched_terms"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Percentage == 0 || len(resp.MatchedTerms) == 0 {
		t.Fatalf("expected a non-zero match, got %+v", resp)
	}
}

func TestHTTP_Score_400_MissingText(t *testing.T) {
	router := newTestRouter(newRepoWithJobs(uuid.New()), &processorStub{})

	rr := postJSON(t, router, "/score", `{"original_resume":"only one side"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
