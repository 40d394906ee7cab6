package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	JobStatusDraft     = "draft"
	JobStatusPublished = "published"
	JobStatusArchived  = "archived"
)

// ApplyField is a custom question on a job's application form.
type ApplyField struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// Job is a position posted by an organization. Identity (ID, OrgID) is
// immutable once created; content fields are mutable until archived.
type Job struct {
	ID             uuid.UUID    `db:"id"              json:"id"`
	OrgID          uuid.UUID    `db:"org_id"          json:"org_id"`
	Title          string       `db:"title"           json:"title"`
	Slug           *string      `db:"slug"            json:"slug,omitempty"`
	Team           *string      `db:"team"            json:"team,omitempty"`
	Role           *string      `db:"role"            json:"role,omitempty"`
	ShortSummary   *string      `db:"short_summary"   json:"short_summary,omitempty"`
	ContentMD      *string      `db:"content_md"      json:"content_md,omitempty"`
	RequiredSkills []string     `db:"required_skills" json:"required_skills"`
	Location       *string      `db:"location"        json:"location,omitempty"`
	EmploymentType *string      `db:"employment_type" json:"employment_type,omitempty"`
	ApplyFields    []ApplyField `db:"apply_fields"    json:"apply_fields"`
	Status         string       `db:"status"          json:"status"`
	CreatedBy      *uuid.UUID   `db:"created_by"      json:"created_by,omitempty"`
	PublishedAt    *time.Time   `db:"published_at"    json:"published_at,omitempty"`
	CreatedAt      time.Time    `db:"created_at"      json:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"      json:"updated_at"`
}

// JobWithStats is a job row joined with submission aggregates for listings.
type JobWithStats struct {
	ID              uuid.UUID `db:"id"               json:"id"`
	OrgID           uuid.UUID `db:"org_id"           json:"org_id"`
	Title           string    `db:"title"            json:"title"`
	Team            *string   `db:"team"             json:"team,omitempty"`
	Role            *string   `db:"role"             json:"role,omitempty"`
	Status          string    `db:"status"           json:"status"`
	UpdatedAt       time.Time `db:"updated_at"       json:"updated_at"`
	ApplicantsCount int       `db:"applicants_count" json:"applicants_count"`
	AvgScore        *float64  `db:"avg_score"        json:"avg_score,omitempty"`
}
