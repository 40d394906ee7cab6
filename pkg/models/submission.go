package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus tracks a candidate through the hiring pipeline.
type SubmissionStatus string

const (
	StatusNew                SubmissionStatus = "new"
	StatusReviewed           SubmissionStatus = "reviewed"
	StatusShortlisted        SubmissionStatus = "shortlisted"
	StatusInterviewScheduled SubmissionStatus = "interview_scheduled"
	StatusInterviewing       SubmissionStatus = "interviewing"
	StatusInterviewed        SubmissionStatus = "interviewed"
	StatusOffer              SubmissionStatus = "offer"
	StatusRejected           SubmissionStatus = "rejected"
	StatusHired              SubmissionStatus = "hired"
)

// IsValid reports whether s is a known pipeline status.
func (s SubmissionStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusReviewed, StatusShortlisted, StatusInterviewScheduled,
		StatusInterviewing, StatusInterviewed, StatusOffer, StatusRejected, StatusHired:
		return true
	default:
		return false
	}
}

func (s SubmissionStatus) String() string { return string(s) }

// ScoringDetails is the structured rationale produced by the AI scorer.
type ScoringDetails struct {
	Score     int      `json:"score"`
	Reasoning string   `json:"reasoning"`
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
}

// Submission is one candidate's application to one job. At most one
// submission exists per (job_id, email); duplicates are rejected at intake.
// Score and ScoringDetails stay nil until the scoring worker completes.
type Submission struct {
	ID             uuid.UUID        `db:"id"              json:"id"`
	JobID          uuid.UUID        `db:"job_id"          json:"job_id"`
	Name           string           `db:"name"            json:"name"`
	Email          string           `db:"email"           json:"email"`
	Phone          string           `db:"phone"           json:"phone"`
	ResumePath     string           `db:"resume_path"     json:"resume_path"`
	ResumeMIME     string           `db:"resume_mime"     json:"resume_mime"`
	Status         SubmissionStatus `db:"status"          json:"status"`
	Score          *int             `db:"score"           json:"score,omitempty"`
	ScoringDetails *ScoringDetails  `db:"scoring_details" json:"scoring_details,omitempty"`
	ReviewerNotes  ReviewerNotes    `db:"reviewer_notes"  json:"reviewer_notes"`
	CreatedAt      time.Time        `db:"created_at"      json:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at"      json:"updated_at"`

	// Enrichment fields populated by list queries, not stored columns.
	JobTitle  string `db:"-" json:"job_title,omitempty"`
	ResumeURL string `db:"-" json:"resume_url,omitempty"`
}
