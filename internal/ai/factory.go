package ai

import (
	"context"
	"fmt"

	"github.com/hubhr/hubhr/internal/ai/gemini"
	"github.com/hubhr/hubhr/internal/ai/mock"
	"github.com/hubhr/hubhr/internal/config"
	"github.com/hubhr/hubhr/pkg/models"
)

// NewScorer constructs the appropriate resume scorer based on config.
// Called once at server startup.
func NewScorer(ctx context.Context, cfg config.AIConfig) (models.ResumeScorer, error) {
	switch cfg.Provider {
	case "gemini":
		return gemini.NewProvider(ctx, cfg.Gemini)
	case "mock":
		return mock.NewMockScorer(), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q: must be one of gemini, mock", cfg.Provider)
	}
}
