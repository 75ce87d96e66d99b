package llm

import (
	"strings"
	"testing"

	"resume-tailor-service/internal/entity"
)

func TestBuildPrompt_IncludesBothTexts(t *testing.T) {
	for _, task := range []entity.JobType{entity.TypeSuggest, entity.TypeTailor} {
		prompt, err := BuildPrompt(task, "RESUME-MARKER", "JD-MARKER")
		if err != nil {
			t.Fatalf("%s: expected nil error, got %v", task, err)
		}
		if !strings.Contains(prompt, "RESUME-MARKER") || !strings.Contains(prompt, "JD-MARKER") {
			t.Fatalf("%s: prompt missing inputs", task)
		}
	}
}

func TestBuildPrompt_TasksDiffer(t *testing.T) {
	suggest, _ := BuildPrompt(entity.TypeSuggest, "r", "jd")
	tailor, _ := BuildPrompt(entity.TypeTailor, "r", "jd")
	if suggest == tailor {
		t.Fatal("suggest and tailor must use distinct prompts")
	}
}

func TestBuildPrompt_UnknownTask(t *testing.T) {
	if _, err := BuildPrompt(entity.JobType("bogus"), "r", "jd"); err == nil {
		t.Fatal("expected error for unknown task")
	}
}
