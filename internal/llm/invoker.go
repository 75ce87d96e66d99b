// Package llm abstracts the text-generation backends used to produce résumé
// suggestions and tailored rewrites. Business logic talks to the Invoker
// interface only; the concrete backend is chosen by configuration.
package llm

import (
	"context"
	"fmt"

	"resume-tailor-service/internal/entity"
)

// maxCauseLen caps how much of an upstream error body is carried around.
// Full payloads may contain oversized or sensitive content and are never
// stored verbatim.
const maxCauseLen = 300

type Invoker interface {
	Generate(ctx context.Context, task entity.JobType, originalResume, jobDescription string) (string, error)
}

// UpstreamError reports a failed or unusable response from a generation
// backend. Cause is a short, human-readable summary safe to log and persist.
type UpstreamError struct {
	Backend string
	Cause   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s backend: %s", e.Backend, e.Cause)
}
