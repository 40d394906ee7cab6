package scoring

import (
	"testing"

	"github.com/hubhr/hubhr/internal/ai"
	"github.com/hubhr/hubhr/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse_PlainJSON(t *testing.T) {
	raw := `{"score": 85, "reasoning": "Strong match", "strengths": ["go"], "gaps": ["k8s"]}`

	details, err := parseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, 85, details.Score)
	assert.Equal(t, "Strong match", details.Reasoning)
	assert.Equal(t, []string{"go"}, details.Strengths)
	assert.Equal(t, []string{"k8s"}, details.Gaps)
}

func TestParseResponse_MarkdownFences(t *testing.T) {
	raw := "```json\n{\"score\": 70, \"reasoning\": \"ok\", \"strengths\": [], \"gaps\": []}\n```"

	details, err := parseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, 70, details.Score)
}

func TestParseResponse_BareFences(t *testing.T) {
	raw := "```\n{\"score\": 55, \"reasoning\": \"mid\", \"strengths\": [], \"gaps\": []}\n```"

	details, err := parseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, 55, details.Score)
}

func TestParseResponse_ClampsScore(t *testing.T) {
	details, err := parseResponse(`{"score": 140, "reasoning": "x"}`)
	require.NoError(t, err)
	assert.Equal(t, 100, details.Score)

	details, err = parseResponse(`{"score": -5, "reasoning": "x"}`)
	require.NoError(t, err)
	assert.Equal(t, 0, details.Score)
}

func TestParseResponse_Malformed(t *testing.T) {
	_, err := parseResponse("I think this candidate is great!")
	assert.ErrorIs(t, err, ai.ErrInvalidResponse)
}

func TestBuildPrompt_IncludesJobFields(t *testing.T) {
	role := "Senior Backend"
	content := "Build the platform."
	job := &models.Job{
		Title:          "Backend Engineer",
		Role:           &role,
		ContentMD:      &content,
		RequiredSkills: []string{"go", "postgres"},
	}

	prompt := buildPrompt(job)
	assert.Contains(t, prompt, "Title: Backend Engineer")
	assert.Contains(t, prompt, "Role: Senior Backend")
	assert.Contains(t, prompt, "Build the platform.")
	assert.Contains(t, prompt, "Required Skills: go, postgres")
	assert.Contains(t, prompt, "Skill Match (40%)")
}
