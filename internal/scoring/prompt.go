package scoring

import (
	"fmt"
	"strings"

	"github.com/hubhr/hubhr/pkg/models"
)

// buildPrompt renders the scoring instructions for one job. The model
// receives the resume itself as an attached document, not in the prompt.
func buildPrompt(job *models.Job) string {
	var b strings.Builder

	b.WriteString("You are an automated resume-scoring engine for a hiring platform.\n")
	b.WriteString("Your task is to evaluate how well a candidate's resume matches a specific job description.\n\n")

	b.WriteString("JOB DESCRIPTION:\n")
	fmt.Fprintf(&b, "Title: %s\n", job.Title)
	if job.Role != nil {
		fmt.Fprintf(&b, "Role: %s\n", *job.Role)
	}
	if job.ContentMD != nil {
		fmt.Fprintf(&b, "Content:\n%s\n", *job.ContentMD)
	}
	if len(job.RequiredSkills) > 0 {
		fmt.Fprintf(&b, "Required Skills: %s\n", strings.Join(job.RequiredSkills, ", "))
	}

	b.WriteString(`
Follow these rules:
1. Evaluate the resume across: Skill Match (40%), Experience & Seniority (30%), Role & Domain Fit (20%), Resume Quality (10%).
2. Generate a score 0-100.
3. STRICT JSON Output:
{
  "score": 85,
  "reasoning": "Short explanation...",
  "strengths": ["string"],
  "gaps": ["string"]
}
Do not include markdown blocks.
`)

	return b.String()
}
