// Package gemini implements resume scoring via the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hubhr/hubhr/internal/config"
	"github.com/hubhr/hubhr/pkg/models"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Provider wraps the Google GenAI client for multimodal resume scoring.
type Provider struct {
	client    *genai.Client
	modelName string
}

// NewProvider creates a new Provider configured for the Gemini API backend.
func NewProvider(ctx context.Context, cfg config.GeminiConfig) (*Provider, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
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

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	return &Provider{client: client, modelName: model}, nil
}

func (p *Provider) Name() string { return "gemini" }

// ScoreResume sends the scoring prompt plus the resume document as inline
// data and returns the model's raw text response.
func (p *Provider) ScoreResume(ctx context.Context, prompt string, doc models.ResumeDocument) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt must not be empty")
	}
	if len(doc.Data) == 0 {
		return "", errors.New("resume document must not be empty")
	}

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: prompt},
			{InlineData: &genai.Blob{Data: doc.Data, MIMEType: doc.MIMEType}},
		},
	}}

	resp, err := p.client.Models.GenerateContent(ctx, p.modelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

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

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

var _ models.ResumeScorer = (*Provider)(nil)
