package models

import "context"

// ResumeDocument is a binary resume blob handed to the scorer.
// MIMEType defaults to application/pdf when the upload did not carry one.
type ResumeDocument struct {
	Data     []byte
	MIMEType string
}

// ResumeScorer is the core interface all AI integrations must implement.
// Never call a specific AI backend directly — always inject this interface.
// The returned text is expected to contain a single JSON object; stripping
// markdown fences and parsing is the scoring worker's responsibility.
type ResumeScorer interface {
	// ScoreResume sends the scoring prompt plus the resume document and
	// returns the model's raw text response.
	ScoreResume(ctx context.Context, prompt string, doc ResumeDocument) (string, error)
	// Name returns the provider identifier (e.g., "gemini").
	Name() string
}
