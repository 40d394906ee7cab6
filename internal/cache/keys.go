package cache

import (
	"fmt"

	"github.com/google/uuid"
)

func ScoringStatusKey(submissionID uuid.UUID) string {
	return fmt.Sprintf("scoring:%s", submissionID)
}

func RateLimitKey(keyPrefix string) string {
	return fmt.Sprintf("ratelimit:%s", keyPrefix)
}

func JobDetailKey(jobID uuid.UUID) string {
	return fmt.Sprintf("job:detail:%s", jobID)
}

func DashboardStatsKey(orgID uuid.UUID) string {
	return fmt.Sprintf("dashboard:stats:%s", orgID)
}
