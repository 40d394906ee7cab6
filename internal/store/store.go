package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hubhr/hubhr/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// AdminStore is the privileged data-access capability used by the intake
// service, the scoring worker, and authentication. It can read and write
// across organizations; handlers should depend on OrgStore instead.
type AdminStore interface {
	Ping(ctx context.Context) error

	CreateOrganization(ctx context.Context, org *models.Organization) error
	GetOrganization(ctx context.Context, id uuid.UUID) (*models.Organization, error)

	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)

	SubmissionExists(ctx context.Context, jobID uuid.UUID, email string) (bool, error)
	CreateSubmission(ctx context.Context, sub *models.Submission) error
	GetSubmissionWithJob(ctx context.Context, id uuid.UUID) (*models.Submission, *models.Job, error)
	UpdateSubmissionScore(ctx context.Context, id uuid.UUID, details models.ScoringDetails) error

	// MutateSubmission loads the submission under a row lock, applies fn,
	// and writes status and reviewer_notes back in the same transaction.
	// Concurrent mutations on one submission serialize instead of losing
	// updates. fn returning an error aborts without writing.
	MutateSubmission(ctx context.Context, id uuid.UUID, fn func(*models.Submission) error) (*models.Submission, error)

	GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error)
	UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error
}

// OrgStore is the organization-scoped capability consumed by staff-facing
// handlers. Every query is filtered by the caller's organization.
type OrgStore interface {
	CreateJob(ctx context.Context, job *models.Job) error
	UpdateJob(ctx context.Context, orgID, jobID uuid.UUID, upd JobUpdate) (*models.Job, error)
	GetOrgJob(ctx context.Context, orgID, jobID uuid.UUID) (*models.Job, error)
	GetPublishedJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error)
	ListOrgJobs(ctx context.Context, orgID uuid.UUID) ([]*models.JobWithStats, error)

	ListSubmissions(ctx context.Context, f SubmissionFilter) ([]*models.Submission, error)
	GetOrgSubmission(ctx context.Context, orgID, id uuid.UUID) (*models.Submission, error)
	CountOrgJobs(ctx context.Context, orgID uuid.UUID, status string) (int, error)
	CountOrgSubmissions(ctx context.Context, orgID uuid.UUID, statuses ...models.SubmissionStatus) (int, error)
	SubmissionTimesSince(ctx context.Context, orgID uuid.UUID, since time.Time) ([]time.Time, error)
	RecentSubmissions(ctx context.Context, orgID uuid.UUID, limit int) ([]*models.Submission, error)

	CreateAPIKey(ctx context.Context, key *models.APIKey) error
	ListAPIKeys(ctx context.Context, orgID uuid.UUID) ([]*models.APIKey, error)
	RevokeAPIKey(ctx context.Context, id uuid.UUID, orgID uuid.UUID) error
}

// Store combines both capabilities; PostgresStore satisfies it.
type Store interface {
	AdminStore
	OrgStore
}

// SubmissionFilter narrows ListSubmissions. OrgID is required; the zero
// value of every other field means "any".
type SubmissionFilter struct {
	OrgID    uuid.UUID
	JobID    uuid.UUID
	Email    string
	Statuses []models.SubmissionStatus
}

// JobUpdate carries the mutable job fields; nil pointers are left unchanged.
type JobUpdate struct {
	Title          *string
	Team           *string
	Role           *string
	Status         *string
	ShortSummary   *string
	ContentMD      *string
	RequiredSkills []string
	Location       *string
	EmploymentType *string
	ApplyFields    []models.ApplyField
}
