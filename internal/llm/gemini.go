package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"resume-tailor-service/internal/entity"
	"resume-tailor-service/internal/logger"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Gemini generates text through the Google GenAI API.
type Gemini struct {
	client    *genai.Client
	modelName string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}

	return &Gemini{client: client, modelName: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, task entity.JobType, originalResume, jobDescription string) (string, error) {
	prompt, err := BuildPrompt(task, originalResume, jobDescription)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", &UpstreamError{Backend: "gemini", Cause: logger.Truncate(err.Error(), maxCauseLen)}
	}

	output := collectText(resp)
	if output == "" {
		return "", &UpstreamError{Backend: "gemini", Cause: "api returned no usable text"}
	}
	return output, nil
}

// collectText joins the textual parts of every candidate, skipping whatever
// the API left nil or blank.
func collectText(resp *genai.GenerateContentResponse) string {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}
	return strings.TrimSpace(builder.String())
}

func (g *Gemini) Model() string {
	return g.modelName
}
