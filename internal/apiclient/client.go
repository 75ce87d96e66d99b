// Package apiclient is a thin JSON client for the job endpoints, used by the
// polling state machine and the CLI.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrJobNotFound = errors.New("job not found")

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type SubmitJobRequest struct {
	JobType        string `json:"job_type"`
	OriginalResume string `json:"original_resume"`
	JobDescription string `json:"job_description"`
}

type submitJobResponse struct {
	JobID string `json:"jobId"`
}

type JobStatusResponse struct {
	Status       string `json:"status"`
	Result       string `json:"result"`
	ErrorMessage string `json:"error_message"`
}

type apiError struct {
	Message string `json:"message"`
}

func (c *Client) SubmitJob(ctx context.Context, req SubmitJobRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/jobs", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var resp submitJobResponse
	if err := c.do(httpReq, &resp); err != nil {
		return "", err
	}
	if resp.JobID == "" {
		return "", errors.New("server returned empty job id")
	}
	return resp.JobID, nil
}

func (c *Client) JobStatus(ctx context.Context, jobID string) (JobStatusResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/jobs/"+jobID, nil)
	if err != nil {
		return JobStatusResponse{}, err
	}

	var resp JobStatusResponse
	if err := c.do(httpReq, &resp); err != nil {
		return JobStatusResponse{}, err
	}
	return resp, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrJobNotFound
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	return json.Unmarshal(raw, out)
}
