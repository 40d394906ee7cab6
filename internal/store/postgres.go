package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hubhr/hubhr/pkg/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// --- Organizations ---

func (s *PostgresStore) CreateOrganization(ctx context.Context, org *models.Organization) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO organizations (id, name, location, industry, image_path, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		org.ID, org.Name, org.Location, org.Industry, org.ImagePath, org.CreatedAt, org.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create organization: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetOrganization(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	var o models.Organization
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, location, industry, image_path, created_at, updated_at
		 FROM organizations WHERE id = $1`, id,
	).Scan(&o.ID, &o.Name, &o.Location, &o.Industry, &o.ImagePath, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &o, nil
}

// --- API Keys ---

func (s *PostgresStore) GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, org_id, name, key_hash, key_prefix, scopes, last_used_at, deleted_at, created_at, updated_at
		 FROM api_keys WHERE key_prefix = $1 AND deleted_at IS NULL`, prefix)
	if err != nil {
		return nil, fmt.Errorf("get api key by prefix: %w", err)
	}
	defer rows.Close()

	var keys []*models.APIKey
	for rows.Next() {
		var k models.APIKey
		if err := rows.Scan(&k.ID, &k.OrgID, &k.Name, &k.KeyHash, &k.KeyPrefix, &k.Scopes,
			&k.LastUsedAt, &k.DeletedAt, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		keys = append(keys, &k)
	}
	return keys, rows.Err()
}

func (s *PostgresStore) UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE api_keys SET last_used_at = NOW(), updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("update api key last used: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateAPIKey(ctx context.Context, key *models.APIKey) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO api_keys (id, org_id, name, key_hash, key_prefix, scopes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		key.ID, key.OrgID, key.Name, key.KeyHash, key.KeyPrefix, key.Scopes, key.CreatedAt, key.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create api key: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAPIKeys(ctx context.Context, orgID uuid.UUID) ([]*models.APIKey, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, org_id, name, key_hash, key_prefix, scopes, last_used_at, deleted_at, created_at, updated_at
		 FROM api_keys WHERE org_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close()

	var keys []*models.APIKey
	for rows.Next() {
		var k models.APIKey
		if err := rows.Scan(&k.ID, &k.OrgID, &k.Name, &k.KeyHash, &k.KeyPrefix, &k.Scopes,
			&k.LastUsedAt, &k.DeletedAt, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		keys = append(keys, &k)
	}
	return keys, rows.Err()
}

func (s *PostgresStore) RevokeAPIKey(ctx context.Context, id uuid.UUID, orgID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE api_keys SET deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND org_id = $2 AND deleted_at IS NULL`, id, orgID)
	if err != nil {
		return fmt.Errorf("revoke api key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Jobs ---

const jobCols = `id, org_id, title, slug, team, role, short_summary, content_md,
	required_skills, location, employment_type, apply_fields, status,
	created_by, published_at, created_at, updated_at`

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	var applyFields []byte
	err := row.Scan(&j.ID, &j.OrgID, &j.Title, &j.Slug, &j.Team, &j.Role, &j.ShortSummary,
		&j.ContentMD, &j.RequiredSkills, &j.Location, &j.EmploymentType, &applyFields,
		&j.Status, &j.CreatedBy, &j.PublishedAt, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(applyFields) > 0 {
		if err := json.Unmarshal(applyFields, &j.ApplyFields); err != nil {
			return nil, fmt.Errorf("decode apply_fields: %w", err)
		}
	}
	return &j, nil
}

func (s *PostgresStore) CreateJob(ctx context.Context, job *models.Job) error {
	applyFields, err := json.Marshal(job.ApplyFields)
	if err != nil {
		return fmt.Errorf("encode apply_fields: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO jobs (id, org_id, title, slug, team, role, short_summary, content_md,
		   required_skills, location, employment_type, apply_fields, status,
		   created_by, published_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		job.ID, job.OrgID, job.Title, job.Slug, job.Team, job.Role, job.ShortSummary,
		job.ContentMD, job.RequiredSkills, job.Location, job.EmploymentType, applyFields,
		job.Status, job.CreatedBy, job.PublishedAt, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	j, err := scanJob(s.pool.QueryRow(ctx,
		`SELECT `+jobCols+` FROM jobs WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

func (s *PostgresStore) GetOrgJob(ctx context.Context, orgID, jobID uuid.UUID) (*models.Job, error) {
	j, err := scanJob(s.pool.QueryRow(ctx,
		`SELECT `+jobCols+` FROM jobs WHERE id = $1 AND org_id = $2`, jobID, orgID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get org job: %w", err)
	}
	return j, nil
}

func (s *PostgresStore) GetPublishedJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	j, err := scanJob(s.pool.QueryRow(ctx,
		`SELECT `+jobCols+` FROM jobs WHERE id = $1 AND status = 'published'`, jobID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get published job: %w", err)
	}
	return j, nil
}

func (s *PostgresStore) UpdateJob(ctx context.Context, orgID, jobID uuid.UUID, upd JobUpdate) (*models.Job, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{jobID, orgID}
	argIdx := 3

	add := func(col string, val any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Team != nil {
		add("team", *upd.Team)
	}
	if upd.Role != nil {
		add("role", *upd.Role)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
		if *upd.Status == models.JobStatusPublished {
			sets = append(sets, "published_at = COALESCE(published_at, NOW())")
		}
	}
	if upd.ShortSummary != nil {
		add("short_summary", *upd.ShortSummary)
	}
	if upd.ContentMD != nil {
		add("content_md", *upd.ContentMD)
	}
	if upd.RequiredSkills != nil {
		add("required_skills", upd.RequiredSkills)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.EmploymentType != nil {
		add("employment_type", *upd.EmploymentType)
	}
	if upd.ApplyFields != nil {
		encoded, err := json.Marshal(upd.ApplyFields)
		if err != nil {
			return nil, fmt.Errorf("encode apply_fields: %w", err)
		}
		add("apply_fields", encoded)
	}

	query := fmt.Sprintf(
		`UPDATE jobs SET %s WHERE id = $1 AND org_id = $2 RETURNING `+jobCols,
		strings.Join(sets, ", "))

	j, err := scanJob(s.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return j, nil
}

func (s *PostgresStore) ListOrgJobs(ctx context.Context, orgID uuid.UUID) ([]*models.JobWithStats, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT j.id, j.org_id, j.title, j.team, j.role, j.status, j.updated_at,
		        COUNT(s.id), AVG(s.score)::float8
		 FROM jobs j
		 LEFT JOIN job_submissions s ON s.job_id = j.id
		 WHERE j.org_id = $1
		 GROUP BY j.id
		 ORDER BY j.created_at DESC`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list org jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.JobWithStats
	for rows.Next() {
		var j models.JobWithStats
		if err := rows.Scan(&j.ID, &j.OrgID, &j.Title, &j.Team, &j.Role, &j.Status,
			&j.UpdatedAt, &j.ApplicantsCount, &j.AvgScore); err != nil {
			return nil, fmt.Errorf("scan job stats: %w", err)
		}
		jobs = append(jobs, &j)
	}
	return jobs, rows.Err()
}

func (s *PostgresStore) CountOrgJobs(ctx context.Context, orgID uuid.UUID, status string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs WHERE org_id = $1 AND status = $2`, orgID, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count org jobs: %w", err)
	}
	return count, nil
}

// --- Submissions ---

const submissionCols = `id, job_id, name, email, phone, resume_path, resume_mime,
	status, score, scoring_details, reviewer_notes, created_at, updated_at`

func scanSubmission(row pgx.Row) (*models.Submission, error) {
	var sub models.Submission
	var details, notes []byte
	err := row.Scan(&sub.ID, &sub.JobID, &sub.Name, &sub.Email, &sub.Phone,
		&sub.ResumePath, &sub.ResumeMIME, &sub.Status, &sub.Score, &details, &notes,
		&sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(details) > 0 {
		sub.ScoringDetails = &models.ScoringDetails{}
		if err := json.Unmarshal(details, sub.ScoringDetails); err != nil {
			return nil, fmt.Errorf("decode scoring_details: %w", err)
		}
	}
	if len(notes) > 0 {
		if err := json.Unmarshal(notes, &sub.ReviewerNotes); err != nil {
			return nil, fmt.Errorf("decode reviewer_notes: %w", err)
		}
	}
	return &sub, nil
}

func (s *PostgresStore) SubmissionExists(ctx context.Context, jobID uuid.UUID, email string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM job_submissions WHERE job_id = $1 AND email = $2)`,
		jobID, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check submission exists: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	notes, err := json.Marshal(sub.ReviewerNotes)
	if err != nil {
		return fmt.Errorf("encode reviewer_notes: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO job_submissions (id, job_id, name, email, phone, resume_path, resume_mime,
		   status, reviewer_notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		sub.ID, sub.JobID, sub.Name, sub.Email, sub.Phone, sub.ResumePath, sub.ResumeMIME,
		sub.Status, notes, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetSubmissionWithJob(ctx context.Context, id uuid.UUID) (*models.Submission, *models.Job, error) {
	sub, err := scanSubmission(s.pool.QueryRow(ctx,
		`SELECT `+submissionCols+` FROM job_submissions WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get submission: %w", err)
	}

	job, err := s.GetJob(ctx, sub.JobID)
	if err != nil {
		return nil, nil, err
	}
	return sub, job, nil
}

// UpdateSubmissionScore persists the scoring result. Status is deliberately
// left untouched: scoring is informational and never drives the pipeline.
func (s *PostgresStore) UpdateSubmissionScore(ctx context.Context, id uuid.UUID, details models.ScoringDetails) error {
	encoded, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encode scoring_details: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE job_submissions SET score = $2, scoring_details = $3, updated_at = NOW()
		 WHERE id = $1`, id, details.Score, encoded)
	if err != nil {
		return fmt.Errorf("update submission score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) MutateSubmission(ctx context.Context, id uuid.UUID, fn func(*models.Submission) error) (*models.Submission, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin mutate submission: %w", err)
	}
	defer tx.Rollback(ctx)

	sub, err := scanSubmission(tx.QueryRow(ctx,
		`SELECT `+submissionCols+` FROM job_submissions WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock submission: %w", err)
	}

	if err := fn(sub); err != nil {
		return nil, err
	}

	notes, err := json.Marshal(sub.ReviewerNotes)
	if err != nil {
		return nil, fmt.Errorf("encode reviewer_notes: %w", err)
	}
	sub.UpdatedAt = time.Now().UTC()

	_, err = tx.Exec(ctx,
		`UPDATE job_submissions SET status = $2, reviewer_notes = $3, updated_at = $4
		 WHERE id = $1`, id, sub.Status, notes, sub.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("write submission: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit mutate submission: %w", err)
	}
	return sub, nil
}

func (s *PostgresStore) ListSubmissions(ctx context.Context, f SubmissionFilter) ([]*models.Submission, error) {
	conditions := []string{"j.org_id = $1"}
	args := []any{f.OrgID}
	argIdx := 2

	if f.JobID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("s.job_id = $%d", argIdx))
		args = append(args, f.JobID)
		argIdx++
	}
	if f.Email != "" {
		conditions = append(conditions, fmt.Sprintf("s.email = $%d", argIdx))
		args = append(args, f.Email)
		argIdx++
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			statuses[i] = string(st)
		}
		conditions = append(conditions, fmt.Sprintf("s.status = ANY($%d)", argIdx))
		args = append(args, statuses)
		argIdx++
	}

	query := fmt.Sprintf(
		`SELECT s.id, s.job_id, s.name, s.email, s.phone, s.resume_path, s.resume_mime,
		        s.status, s.score, s.scoring_details, s.reviewer_notes, s.created_at, s.updated_at,
		        j.title
		 FROM job_submissions s
		 JOIN jobs j ON j.id = s.job_id
		 WHERE %s
		 ORDER BY s.created_at DESC`, strings.Join(conditions, " AND "))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []*models.Submission
	for rows.Next() {
		var sub models.Submission
		var details, notes []byte
		if err := rows.Scan(&sub.ID, &sub.JobID, &sub.Name, &sub.Email, &sub.Phone,
			&sub.ResumePath, &sub.ResumeMIME, &sub.Status, &sub.Score, &details, &notes,
			&sub.CreatedAt, &sub.UpdatedAt, &sub.JobTitle); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		if len(details) > 0 {
			sub.ScoringDetails = &models.ScoringDetails{}
			if err := json.Unmarshal(details, sub.ScoringDetails); err != nil {
				return nil, fmt.Errorf("decode scoring_details: %w", err)
			}
		}
		if len(notes) > 0 {
			if err := json.Unmarshal(notes, &sub.ReviewerNotes); err != nil {
				return nil, fmt.Errorf("decode reviewer_notes: %w", err)
			}
		}
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}

func (s *PostgresStore) GetOrgSubmission(ctx context.Context, orgID, id uuid.UUID) (*models.Submission, error) {
	sub, err := scanSubmission(s.pool.QueryRow(ctx,
		`SELECT s.id, s.job_id, s.name, s.email, s.phone, s.resume_path, s.resume_mime,
		        s.status, s.score, s.scoring_details, s.reviewer_notes, s.created_at, s.updated_at
		 FROM job_submissions s
		 JOIN jobs j ON j.id = s.job_id
		 WHERE s.id = $1 AND j.org_id = $2`, id, orgID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get org submission: %w", err)
	}
	return sub, nil
}

func (s *PostgresStore) CountOrgSubmissions(ctx context.Context, orgID uuid.UUID, statuses ...models.SubmissionStatus) (int, error) {
	query := `SELECT COUNT(*) FROM job_submissions s JOIN jobs j ON j.id = s.job_id WHERE j.org_id = $1`
	args := []any{orgID}
	if len(statuses) > 0 {
		strs := make([]string, len(statuses))
		for i, st := range statuses {
			strs[i] = string(st)
		}
		query += ` AND s.status = ANY($2)`
		args = append(args, strs)
	}

	var count int
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count org submissions: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) SubmissionTimesSince(ctx context.Context, orgID uuid.UUID, since time.Time) ([]time.Time, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT s.created_at
		 FROM job_submissions s
		 JOIN jobs j ON j.id = s.job_id
		 WHERE j.org_id = $1 AND s.created_at >= $2
		 ORDER BY s.created_at ASC`, orgID, since)
	if err != nil {
		return nil, fmt.Errorf("submission times since: %w", err)
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan submission time: %w", err)
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func (s *PostgresStore) RecentSubmissions(ctx context.Context, orgID uuid.UUID, limit int) ([]*models.Submission, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.pool.Query(ctx,
		`SELECT s.id, s.job_id, s.name, s.email, s.phone, s.resume_path, s.resume_mime,
		        s.status, s.score, s.scoring_details, s.reviewer_notes, s.created_at, s.updated_at,
		        j.title
		 FROM job_submissions s
		 JOIN jobs j ON j.id = s.job_id
		 WHERE j.org_id = $1
		 ORDER BY s.created_at DESC
		 LIMIT $2`, orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent submissions: %w", err)
	}
	defer rows.Close()

	var subs []*models.Submission
	for rows.Next() {
		var sub models.Submission
		var details, notes []byte
		if err := rows.Scan(&sub.ID, &sub.JobID, &sub.Name, &sub.Email, &sub.Phone,
			&sub.ResumePath, &sub.ResumeMIME, &sub.Status, &sub.Score, &details, &notes,
			&sub.CreatedAt, &sub.UpdatedAt, &sub.JobTitle); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		if len(details) > 0 {
			sub.ScoringDetails = &models.ScoringDetails{}
			if err := json.Unmarshal(details, sub.ScoringDetails); err != nil {
				return nil, fmt.Errorf("decode scoring_details: %w", err)
			}
		}
		if len(notes) > 0 {
			if err := json.Unmarshal(notes, &sub.ReviewerNotes); err != nil {
				return nil, fmt.Errorf("decode reviewer_notes: %w", err)
			}
		}
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

var _ Store = (*PostgresStore)(nil)
