package llm

import (
	"fmt"

	"resume-tailor-service/internal/entity"
)

const suggestPrompt = `You are an expert resume writer and career coach specializing in Applicant Tracking System (ATS) optimization.

Compare the following resume and job description.
Suggest specific improvements, edits, and new bullet points that can be added or modified in each relevant job experience to make the resume more closely match the requirements, keywords, and skills in the job description.

For each Experience section of the resume:
- List the current bullet points.
- Suggest changes or new bullet points, using clear professional language and quantifying achievements where possible.
- Explain which job description requirements or keywords each suggestion addresses.

Output the suggestions as a structured list, organized by resume section and job title.
Do not rewrite the whole resume. Only provide targeted suggestions and new bullet points with brief reasoning.

Here is the job description:
%s

Here is the resume:
%s

Output:`

const tailorPrompt = `You are a professional resume writer and ATS optimization expert.
Rewrite the following resume to match the provided job description, making sure each experience section includes specific, relevant, and quantifiable bullet points.

Focus on:
- Incorporating important keywords and skills from the job description
- Highlighting relevant achievements and responsibilities for each role
- Using action verbs and professional language
- Keeping the resume ATS-friendly and easy to read

Format the output in clear resume sections: Summary, Experience (with bullet points per position), Skills, and Education.
Do not include information not present in the resume, but rephrase and enhance for greater impact.

Job description to match:
%s

Resume to rewrite:
%s

Return only the tailored resume.`

// BuildPrompt renders the backend-agnostic prompt for a task. An unknown
// task is a per-job failure, not a reason to crash a batch.
func BuildPrompt(task entity.JobType, originalResume, jobDescription string) (string, error) {
	switch task {
	case entity.TypeSuggest:
		return fmt.Sprintf(suggestPrompt, jobDescription, originalResume), nil
	case entity.TypeTailor:
		return fmt.Sprintf(tailorPrompt, jobDescription, originalResume), nil
	default:
		return "", fmt.Errorf("unknown job type %q", task)
	}
}
