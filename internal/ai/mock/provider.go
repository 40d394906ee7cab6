// Package mock provides a configurable in-memory scorer for testing and
// local development without a real AI backend.
package mock

import (
	"context"

	"github.com/hubhr/hubhr/pkg/models"
)

// MockScorer satisfies models.ResumeScorer for testing.
type MockScorer struct {
	Name_           string
	ScoreResumeFunc func(ctx context.Context, prompt string, doc models.ResumeDocument) (string, error)
}

func (m *MockScorer) Name() string { return m.Name_ }

func (m *MockScorer) ScoreResume(ctx context.Context, prompt string, doc models.ResumeDocument) (string, error) {
	if m.ScoreResumeFunc != nil {
		return m.ScoreResumeFunc(ctx, prompt, doc)
	}
	return "", nil
}

// NewMockScorer returns a MockScorer with a sensible default response.
func NewMockScorer() *MockScorer {
	return &MockScorer{
		Name_: "mock",
		ScoreResumeFunc: func(_ context.Context, _ string, _ models.ResumeDocument) (string, error) {
			return `{"score": 72, "reasoning": "Simulated scoring response", "strengths": ["relevant experience"], "gaps": ["no production metrics"]}`, nil
		},
	}
}

// NewFailingScorer returns a MockScorer that always returns the given error.
func NewFailingScorer(err error) *MockScorer {
	return &MockScorer{
		Name_: "mock-failing",
		ScoreResumeFunc: func(_ context.Context, _ string, _ models.ResumeDocument) (string, error) {
			return "", err
		},
	}
}
