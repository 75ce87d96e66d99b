package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"resume-tailor-service/internal/keywords"
	"resume-tailor-service/internal/repository/postgresql"
	"resume-tailor-service/internal/service"
	"resume-tailor-service/internal/worker"
)

// PendingProcessor is the worker-cycle port used by the process endpoint.
type PendingProcessor interface {
	ProcessPending(ctx context.Context) (int, error)
}

type Handler struct {
	jobSvc    *service.JobService
	processor PendingProcessor
}

func NewHandler(jobSvc *service.JobService, processor PendingProcessor) *Handler {
	return &Handler{jobSvc: jobSvc, processor: processor}
}

type submitJobDTO struct {
	JobType        string `json:"job_type"`
	OriginalResume string `json:"original_resume"`
	JobDescription string `json:"job_description"`
}

type submitJobResp struct {
	JobID string `json:"jobId"`
}

type jobStatusResp struct {
	Status       string `json:"status"`
	Result       string `json:"result"`
	ErrorMessage string `json:"error_message"`
}

type processResp struct {
	Processed int `json:"processed"`
}

// SubmitJob godoc
// @Summary Submit a resume job
// @Description Records a pending suggest/tailor job; a worker cycle picks it up later.
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body submitJobDTO true "job payload"
// @Success 200 {object} submitJobResp
// @Failure 400 {object} apiError
// @Failure 500 {object} apiError
// @Router /jobs [post]
func (h *Handler) SubmitJob(w http.ResponseWriter, r *http.Request) {
	var dto submitJobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	id, err := h.jobSvc.SubmitJob(r.Context(), service.SubmitJobRequest{
		Type:           dto.JobType,
		OriginalResume: dto.OriginalResume,
		JobDescription: dto.JobDescription,
	})
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			writeErr(w, http.StatusBadRequest, vErr.Error())
			return
		}
		writeErr(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	writeJSON(w, http.StatusOK, submitJobResp{JobID: id.String()})
}

// GetJobStatus godoc
// @Summary Get job status by id
// @Description Read-only view of a job; never triggers processing.
// @Tags jobs
// @Produce json
// @Param id path string true "job id (uuid)"
// @Success 200 {object} jobStatusResp
// @Failure 404 {object} apiError
// @Router /jobs/{id} [get]
func (h *Handler) GetJobStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusNotFound, "job not found")
		return
	}

	j, err := h.jobSvc.GetJob(r.Context(), id)
	if err != nil {
		if errors.Is(err, postgresql.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "job not found")
			return
		}
		writeErr(w, http.StatusInternalServerError, "failed to load job")
		return
	}

	writeJSON(w, http.StatusOK, jobStatusResp{
		Status:       string(j.Status),
		Result:       j.Result,
		ErrorMessage: j.ErrorMessage,
	})
}

// ProcessJobs godoc
// @Summary Run one worker cycle
// @Description Drains all currently pending jobs into a terminal state.
// @Tags jobs
// @Produce json
// @Success 200 {object} processResp
// @Failure 409 {object} apiError
// @Failure 500 {object} apiError
// @Router /jobs/process [post]
func (h *Handler) ProcessJobs(w http.ResponseWriter, r *http.Request) {
	processed, err := h.processor.ProcessPending(r.Context())
	if err != nil {
		if errors.Is(err, worker.ErrCycleRunning) {
			writeErr(w, http.StatusConflict, "a worker cycle is already running")
			return
		}
		writeErr(w, http.StatusInternalServerError, "failed to fetch jobs")
		return
	}

	writeJSON(w, http.StatusOK, processResp{Processed: processed})
}

type scoreDTO struct {
	OriginalResume string `json:"original_resume"`
	JobDescription string `json:"job_description"`
}

// ScoreResume godoc
// @Summary Keyword-match score
// @Description Pure keyword comparison between a resume and a job description.
// @Tags score
// @Accept json
// @Produce json
// @Param request body scoreDTO true "texts to compare"
// @Success 200 {object} keywords.Match
// @Failure 400 {object} apiError
// @Router /score [post]
func (h *Handler) ScoreResume(w http.ResponseWriter, r *http.Request) {
	var dto scoreDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(dto.OriginalResume) == "" || strings.TrimSpace(dto.JobDescription) == "" {
		writeErr(w, http.StatusBadRequest, "original_resume and job_description are required")
		return
	}

	writeJSON(w, http.StatusOK, keywords.Score(dto.OriginalResume, dto.JobDescription))
}
