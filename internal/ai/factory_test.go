package ai_test

import (
	"context"
	"testing"

	"github.com/hubhr/hubhr/internal/ai"
	"github.com/hubhr/hubhr/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScorer_Mock(t *testing.T) {
	scorer, err := ai.NewScorer(context.Background(), config.AIConfig{Provider: "mock"})
	require.NoError(t, err)
	assert.Equal(t, "mock", scorer.Name())
}

func TestNewScorer_GeminiRequiresKey(t *testing.T) {
	_, err := ai.NewScorer(context.Background(), config.AIConfig{Provider: "gemini"})
	assert.Error(t, err)
}

func TestNewScorer_UnknownProvider(t *testing.T) {
	_, err := ai.NewScorer(context.Background(), config.AIConfig{Provider: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown AI provider")
}
