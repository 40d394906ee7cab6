// Package intake handles public job applications: validation, resume
// upload, duplicate rejection, and handoff to the scoring queue.
package intake

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hubhr/hubhr/internal/storage"
	"github.com/hubhr/hubhr/internal/store"
	"github.com/hubhr/hubhr/pkg/models"
)

var (
	// ErrDuplicateApplication means this email already applied to the job.
	ErrDuplicateApplication = errors.New("application already exists for this job and email")
	// ErrInvalidJob means the job does not exist or is not accepting applications.
	ErrInvalidJob = errors.New("job not found or not accepting applications")
	// ErrStorage wraps resume upload failures that are not the caller's fault.
	ErrStorage = errors.New("resume upload failed")
)

// ValidationError reports the first invalid field of an application.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Application is one candidate's submission payload.
type Application struct {
	JobID       uuid.UUID
	Name        string
	Email       string
	Phone       string
	CoverLetter string

	ResumeFilename string
	ResumeMIME     string
	Resume         []byte
}

// Store is the subset of the data layer the intake service needs.
type Store interface {
	GetPublishedJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error)
	GetOrganization(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	SubmissionExists(ctx context.Context, jobID uuid.UUID, email string) (bool, error)
	CreateSubmission(ctx context.Context, sub *models.Submission) error
}

// Enqueuer hands a freshly created submission to the scoring pipeline.
// Enqueue must never block; it reports whether the submission was accepted.
type Enqueuer interface {
	Enqueue(submissionID uuid.UUID) bool
}

// Service processes incoming applications.
type Service struct {
	store   Store
	resumes storage.ResumeStore
	scoring Enqueuer
	logger  *slog.Logger
}

// NewService creates an intake service.
func NewService(st Store, resumes storage.ResumeStore, scoring Enqueuer, logger *slog.Logger) *Service {
	return &Service{store: st, resumes: resumes, scoring: scoring, logger: logger}
}

// Submit validates and persists one application. The resume is uploaded
// before the database row is written so a stored submission always has a
// retrievable resume. Scoring is queued best-effort after the insert.
func (s *Service) Submit(ctx context.Context, app Application) (*models.Submission, error) {
	if err := validate(app); err != nil {
		return nil, err
	}

	job, err := s.store.GetPublishedJob(ctx, app.JobID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidJob
	}
	if err != nil {
		return nil, fmt.Errorf("load job: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(app.Email))
	exists, err := s.store.SubmissionExists(ctx, job.ID, email)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if exists {
		return nil, ErrDuplicateApplication
	}

	org, err := s.store.GetOrganization(ctx, job.OrgID)
	if err != nil {
		return nil, fmt.Errorf("load organization: %w", err)
	}

	mime := app.ResumeMIME
	if mime == "" {
		mime = "application/pdf"
	}

	key := objectKey(job.ID, app.ResumeFilename)
	if err := s.uploadResume(ctx, org.BucketName(), key, app.Resume, mime); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sub := &models.Submission{
		ID:         uuid.New(),
		JobID:      job.ID,
		Name:       strings.TrimSpace(app.Name),
		Email:      email,
		Phone:      strings.TrimSpace(app.Phone),
		ResumePath: key,
		ResumeMIME: mime,
		Status:     models.StatusNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if cl := strings.TrimSpace(app.CoverLetter); cl != "" {
		sub.ReviewerNotes.CoverLetter = &cl
	}

	if err := s.store.CreateSubmission(ctx, sub); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, ErrDuplicateApplication
		}
		return nil, fmt.Errorf("create submission: %w", err)
	}

	if !s.scoring.Enqueue(sub.ID) {
		// Scoring is advisory; the application itself succeeded.
		s.logger.Warn("scoring queue full, submission left unscored",
			"submission_id", sub.ID, "job_id", job.ID)
	}

	s.logger.Info("application received",
		"submission_id", sub.ID, "job_id", job.ID, "org_id", job.OrgID)
	return sub, nil
}

// uploadResume writes the resume, recovering once from a missing bucket by
// creating it and retrying.
func (s *Service) uploadResume(ctx context.Context, bucket, key string, data []byte, mime string) error {
	err := s.resumes.Upload(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), mime)
	if errors.Is(err, storage.ErrBucketNotFound) {
		s.logger.Info("resume bucket missing, creating", "bucket", bucket)
		if err := s.resumes.EnsureBucket(ctx, bucket); err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
		err = s.resumes.Upload(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), mime)
	}
	if errors.Is(err, storage.ErrObjectTooLarge) {
		return &ValidationError{Field: "resume", Message: "resume exceeds the maximum allowed size"}
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// objectKey builds the resume path {jobID}/{unixmilli}_{token}{ext}. The
// timestamp plus random token makes collisions on re-apply attempts
// practically impossible; uploads still refuse to overwrite.
func objectKey(jobID uuid.UUID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".pdf"
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s/%d_%s%s", jobID, time.Now().UnixMilli(), token, ext)
}

// validate checks required fields and surfaces the first violation.
func validate(app Application) error {
	if len(strings.TrimSpace(app.Name)) < 2 {
		return &ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	if !emailPattern.MatchString(strings.TrimSpace(app.Email)) {
		return &ValidationError{Field: "email", Message: "a valid email address is required"}
	}
	if len(strings.TrimSpace(app.Phone)) < 5 {
		return &ValidationError{Field: "phone", Message: "phone must be at least 5 characters"}
	}
	if len(app.Resume) == 0 {
		return &ValidationError{Field: "resume", Message: "a resume file is required"}
	}
	return nil
}
