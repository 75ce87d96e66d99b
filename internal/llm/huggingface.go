package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-tailor-service/internal/entity"
	"resume-tailor-service/internal/logger"
)

const defaultHFEndpoint = "https://api-inference.huggingface.co/models/mistralai/Mistral-7B-Instruct"

// HuggingFace generates text through the Hugging Face Inference API.
// The API answers in several shapes depending on model and error condition;
// all of them are normalized here into plain text or an UpstreamError.
type HuggingFace struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHuggingFace(endpoint, apiKey string) *HuggingFace {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = defaultHFEndpoint
	}
	return &HuggingFace{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

type hfRequest struct {
	Inputs string `json:"inputs"`
}

func (h *HuggingFace) Generate(ctx context.Context, task entity.JobType, originalResume, jobDescription string) (string, error) {
	prompt, err := BuildPrompt(task, originalResume, jobDescription)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(hfRequest{Inputs: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", &UpstreamError{Backend: "huggingface", Cause: logger.Truncate(err.Error(), maxCauseLen)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", &UpstreamError{Backend: "huggingface", Cause: logger.Truncate(err.Error(), maxCauseLen)}
	}

	if resp.StatusCode != http.StatusOK {
		cause := fmt.Sprintf("status %d: %s", resp.StatusCode, logger.Truncate(string(raw), maxCauseLen))
		return "", &UpstreamError{Backend: "huggingface", Cause: cause}
	}

	text, err := extractGeneratedText(raw)
	if err != nil {
		return "", &UpstreamError{Backend: "huggingface", Cause: err.Error()}
	}

	// Some models echo the prompt back in front of the completion.
	text = strings.TrimSpace(strings.TrimPrefix(text, prompt))
	if text == "" {
		return "", &UpstreamError{Backend: "huggingface", Cause: "api returned no usable text"}
	}
	return text, nil
}

// extractGeneratedText normalizes the known Inference API response shapes:
// a list of generations, a single generation object, or an error object.
func extractGeneratedText(raw []byte) (string, error) {
	type generation struct {
		GeneratedText string `json:"generated_text"`
		Error         string `json:"error"`
	}

	var list []generation
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return "", fmt.Errorf("api returned an empty generation list")
		}
		if list[0].Error != "" {
			return "", fmt.Errorf("api error: %s", logger.Truncate(list[0].Error, maxCauseLen))
		}
		return list[0].GeneratedText, nil
	}

	var single generation
	if err := json.Unmarshal(raw, &single); err == nil {
		if single.Error != "" {
			return "", fmt.Errorf("api error: %s", logger.Truncate(single.Error, maxCauseLen))
		}
		if single.GeneratedText != "" {
			return single.GeneratedText, nil
		}
		return "", fmt.Errorf("response contains no generated_text")
	}

	return "", fmt.Errorf("unrecognized response shape: %s", logger.Truncate(string(raw), maxCauseLen))
}
