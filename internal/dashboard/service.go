// Package dashboard aggregates pipeline data into the numbers staff see
// on the overview screen.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hubhr/hubhr/pkg/models"
)

// Stats is the overview card set for one organization.
type Stats struct {
	ActiveJobs       int `json:"active_jobs"`
	TotalCandidates  int `json:"total_candidates"`
	ActiveInterviews int `json:"active_interviews"`
}

// SeriesPoint is one day in the applications chart.
type SeriesPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Total int    `json:"total"`
}

// ActivityEntry is one row in the recent-activity feed.
type ActivityEntry struct {
	ID            uuid.UUID               `json:"id"`
	CandidateName string                  `json:"candidate_name"`
	JobTitle      string                  `json:"job_title"`
	Status        models.SubmissionStatus `json:"status"`
	AppliedAt     time.Time               `json:"applied_at"`
}

// Store is the subset of the data layer the dashboard needs.
type Store interface {
	CountOrgJobs(ctx context.Context, orgID uuid.UUID, status string) (int, error)
	CountOrgSubmissions(ctx context.Context, orgID uuid.UUID, statuses ...models.SubmissionStatus) (int, error)
	SubmissionTimesSince(ctx context.Context, orgID uuid.UUID, since time.Time) ([]time.Time, error)
	RecentSubmissions(ctx context.Context, orgID uuid.UUID, limit int) ([]*models.Submission, error)
}

// Service computes dashboard aggregates.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a dashboard service.
func NewService(st Store) *Service {
	return &Service{store: st, now: time.Now}
}

// Stats returns the headline counts: published jobs, all-time candidates,
// and candidates currently in the interview stages.
func (s *Service) Stats(ctx context.Context, orgID uuid.UUID) (*Stats, error) {
	activeJobs, err := s.store.CountOrgJobs(ctx, orgID, models.JobStatusPublished)
	if err != nil {
		return nil, fmt.Errorf("count active jobs: %w", err)
	}

	totalCandidates, err := s.store.CountOrgSubmissions(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("count candidates: %w", err)
	}

	activeInterviews, err := s.store.CountOrgSubmissions(ctx, orgID,
		models.StatusInterviewScheduled, models.StatusInterviewing)
	if err != nil {
		return nil, fmt.Errorf("count active interviews: %w", err)
	}

	return &Stats{
		ActiveJobs:       activeJobs,
		TotalCandidates:  totalCandidates,
		ActiveInterviews: activeInterviews,
	}, nil
}

// seriesDays is the window of the applications chart.
const seriesDays = 30

// ApplicationSeries returns one point per day for the last 30 days, in
// chronological order, zero-filled for days with no applications.
func (s *Service) ApplicationSeries(ctx context.Context, orgID uuid.UUID) ([]SeriesPoint, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(seriesDays - 1))

	times, err := s.store.SubmissionTimesSince(ctx, orgID, since)
	if err != nil {
		return nil, fmt.Errorf("load submission times: %w", err)
	}

	counts := make(map[string]int, seriesDays)
	for _, ts := range times {
		counts[ts.UTC().Format("2006-01-02")]++
	}

	series := make([]SeriesPoint, 0, seriesDays)
	for i := 0; i < seriesDays; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		series = append(series, SeriesPoint{Date: day, Total: counts[day]})
	}
	return series, nil
}

// RecentActivity returns the newest applications across the organization.
func (s *Service) RecentActivity(ctx context.Context, orgID uuid.UUID, limit int) ([]ActivityEntry, error) {
	subs, err := s.store.RecentSubmissions(ctx, orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("load recent submissions: %w", err)
	}

	entries := make([]ActivityEntry, 0, len(subs))
	for _, sub := range subs {
		entries = append(entries, ActivityEntry{
			ID:            sub.ID,
			CandidateName: sub.Name,
			JobTitle:      sub.JobTitle,
			Status:        sub.Status,
			AppliedAt:     sub.CreatedAt,
		})
	}
	return entries, nil
}
