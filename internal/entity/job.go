package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type JobType string

const (
	TypeSuggest JobType = "suggest"
	TypeTailor  JobType = "tailor"
)

// ParseJobType validates a raw job type coming from a client.
func ParseJobType(s string) (JobType, error) {
	switch JobType(s) {
	case TypeSuggest:
		return TypeSuggest, nil
	case TypeTailor:
		return TypeTailor, nil
	default:
		return "", fmt.Errorf("unknown job type %q", s)
	}
}

type JobStatus string

const (
	StatusPending  JobStatus = "pending"
	StatusComplete JobStatus = "complete"
	StatusError    JobStatus = "error"
)

type Job struct {
	ID             uuid.UUID `json:"id"`
	Type           JobType   `json:"job_type"`
	Status         JobStatus `json:"status"`
	OriginalResume string    `json:"original_resume"`
	JobDescription string    `json:"job_description"`
	Result         string    `json:"result,omitempty"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Terminal reports whether the job has left the pending state.
func (j *Job) Terminal() bool {
	return j.Status == StatusComplete || j.Status == StatusError
}

// Outcome is the terminal result of processing a job: either generated
// text (status=complete) or a failure message (status=error). Constructed
// only via Completed or Failed, so exactly one side is ever populated.
type Outcome struct {
	status  JobStatus
	result  string
	message string
}

func Completed(result string) Outcome {
	return Outcome{status: StatusComplete, result: result}
}

func Failed(message string) Outcome {
	return Outcome{status: StatusError, message: message}
}

func (o Outcome) Status() JobStatus    { return o.status }
func (o Outcome) Result() string       { return o.result }
func (o Outcome) ErrorMessage() string { return o.message }
