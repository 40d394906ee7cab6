package scoring

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hubhr/hubhr/internal/ai"
	"github.com/hubhr/hubhr/pkg/models"
)

// parseResponse extracts ScoringDetails from the model's raw text. Models
// sometimes wrap the JSON in markdown fences despite instructions, so
// fences are stripped before parsing. Scores are clamped to [0, 100].
func parseResponse(raw string) (models.ScoringDetails, error) {
	clean := stripFences(raw)

	var details models.ScoringDetails
	if err := json.Unmarshal([]byte(clean), &details); err != nil {
		return models.ScoringDetails{}, fmt.Errorf("%w: %v", ai.ErrInvalidResponse, err)
	}

	if details.Score < 0 {
		details.Score = 0
	}
	if details.Score > 100 {
		details.Score = 100
	}

	return details, nil
}

// stripFences removes markdown code fences around a JSON payload.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
