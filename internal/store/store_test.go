package store_test

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hubhr/hubhr/internal/store"
	"github.com/hubhr/hubhr/pkg/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// migrationsDir returns the absolute path to the migrations directory.
func migrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "migrations")
}

// setupTestDB spins up a Postgres container, runs migrations, and returns a pool + cleanup.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("hubhr_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	err = store.RunMigrations(connStr, migrationsDir())
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	return pool
}

// createTestOrg inserts an organization and returns its ID.
func createTestOrg(t *testing.T, s store.Store) uuid.UUID {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	org := &models.Organization{
		ID:        uuid.New(),
		Name:      "Acme Robotics",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateOrganization(context.Background(), org))
	return org.ID
}

// createTestJob inserts a published job for orgID and returns it.
func createTestJob(t *testing.T, s store.Store, orgID uuid.UUID) *models.Job {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	team := "Platform"
	job := &models.Job{
		ID:             uuid.New(),
		OrgID:          orgID,
		Title:          "Backend Engineer",
		Team:           &team,
		RequiredSkills: []string{"go", "postgres"},
		ApplyFields: []models.ApplyField{
			{ID: "visa", Question: "Do you need sponsorship?", Type: "boolean", Required: true},
		},
		Status:    models.JobStatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateJob(context.Background(), job))
	return job
}

// createTestSubmission inserts a submission for jobID and returns it.
func createTestSubmission(t *testing.T, s store.Store, jobID uuid.UUID, email string) *models.Submission {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	sub := &models.Submission{
		ID:         uuid.New(),
		JobID:      jobID,
		Name:       "Jordan Reyes",
		Email:      email,
		Phone:      "+1 555 0100",
		ResumePath: jobID.String() + "/1700000000000_abcd1234.pdf",
		ResumeMIME: "application/pdf",
		Status:     models.StatusNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, s.CreateSubmission(context.Background(), sub))
	return sub
}

// --- Organization Tests ---

func TestOrganization_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()

	orgID := createTestOrg(t, s)

	org, err := s.GetOrganization(ctx, orgID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Robotics", org.Name)
	assert.Equal(t, orgID.String(), org.BucketName())
}

func TestOrganization_GetNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)

	_, err := s.GetOrganization(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// --- API Key Tests ---

func TestAPIKey_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)

	now := time.Now().UTC().Truncate(time.Microsecond)
	key := &models.APIKey{
		ID:        uuid.New(),
		OrgID:     orgID,
		Name:      "test-key",
		KeyHash:   "bcrypt-hash-here",
		KeyPrefix: "hh_abcd",
		Scopes:    []string{"staff"},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.CreateAPIKey(ctx, key)
	require.NoError(t, err)

	keys, err := s.GetAPIKeyByPrefix(ctx, "hh_abcd")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, key.ID, keys[0].ID)
	assert.Equal(t, orgID, keys[0].OrgID)
}

func TestAPIKey_Revoke(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)
	now := time.Now().UTC().Truncate(time.Microsecond)

	key := &models.APIKey{
		ID: uuid.New(), OrgID: orgID, Name: "revoke-me", KeyHash: "hash",
		KeyPrefix: "hh_revk", Scopes: []string{"staff"}, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.CreateAPIKey(ctx, key))

	require.NoError(t, s.RevokeAPIKey(ctx, key.ID, orgID))

	keys, err := s.ListAPIKeys(ctx, orgID)
	require.NoError(t, err)
	assert.Empty(t, keys)

	keys, err = s.GetAPIKeyByPrefix(ctx, "hh_revk")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestAPIKey_RevokeWrongOrg(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)
	now := time.Now().UTC().Truncate(time.Microsecond)

	key := &models.APIKey{
		ID: uuid.New(), OrgID: orgID, Name: "k", KeyHash: "hash",
		KeyPrefix: "hh_wrng", Scopes: []string{"staff"}, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.CreateAPIKey(ctx, key))

	err := s.RevokeAPIKey(ctx, key.ID, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// --- Job Tests ---

func TestJob_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)

	job := createTestJob(t, s, orgID)

	got, err := s.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.Title)
	assert.Equal(t, []string{"go", "postgres"}, got.RequiredSkills)
	require.Len(t, got.ApplyFields, 1)
	assert.Equal(t, "visa", got.ApplyFields[0].ID)
}

func TestJob_GetPublishedOnly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)
	now := time.Now().UTC().Truncate(time.Microsecond)

	draft := &models.Job{
		ID: uuid.New(), OrgID: orgID, Title: "Hidden Role",
		Status: models.JobStatusDraft, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.CreateJob(ctx, draft))

	_, err := s.GetPublishedJob(ctx, draft.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	published := createTestJob(t, s, orgID)
	got, err := s.GetPublishedJob(ctx, published.ID)
	require.NoError(t, err)
	assert.Equal(t, published.ID, got.ID)
}

func TestJob_Update(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)
	now := time.Now().UTC().Truncate(time.Microsecond)

	job := &models.Job{
		ID: uuid.New(), OrgID: orgID, Title: "Draft Role",
		Status: models.JobStatusDraft, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.CreateJob(ctx, job))

	newTitle := "Senior Backend Engineer"
	newStatus := models.JobStatusPublished
	got, err := s.UpdateJob(ctx, orgID, job.ID, store.JobUpdate{
		Title:  &newTitle,
		Status: &newStatus,
	})
	require.NoError(t, err)
	assert.Equal(t, newTitle, got.Title)
	assert.Equal(t, models.JobStatusPublished, got.Status)
	assert.NotNil(t, got.PublishedAt)
}

func TestJob_UpdateWrongOrg(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)
	job := createTestJob(t, s, orgID)

	title := "nope"
	_, err := s.UpdateJob(ctx, uuid.New(), job.ID, store.JobUpdate{Title: &title})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestJob_ListWithStats(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)
	job := createTestJob(t, s, orgID)

	sub1 := createTestSubmission(t, s, job.ID, "a@example.com")
	sub2 := createTestSubmission(t, s, job.ID, "b@example.com")
	require.NoError(t, s.UpdateSubmissionScore(ctx, sub1.ID, models.ScoringDetails{Score: 80, Reasoning: "solid"}))
	require.NoError(t, s.UpdateSubmissionScore(ctx, sub2.ID, models.ScoringDetails{Score: 60, Reasoning: "ok"}))

	jobs, err := s.ListOrgJobs(ctx, orgID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, 2, jobs[0].ApplicantsCount)
	require.NotNil(t, jobs[0].AvgScore)
	assert.InDelta(t, 70.0, *jobs[0].AvgScore, 0.001)
}

// --- Submission Tests ---

func TestSubmission_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)
	job := createTestJob(t, s, orgID)

	sub := createTestSubmission(t, s, job.ID, "jordan@example.com")

	got, gotJob, err := s.GetSubmissionWithJob(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, got.Status)
	assert.Nil(t, got.Score)
	assert.Nil(t, got.ScoringDetails)
	assert.Equal(t, job.ID, gotJob.ID)
}

func TestSubmission_DuplicateEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)
	job := createTestJob(t, s, orgID)

	createTestSubmission(t, s, job.ID, "dup@example.com")

	now := time.Now().UTC()
	err := s.CreateSubmission(ctx, &models.Submission{
		ID: uuid.New(), JobID: job.ID, Name: "Someone Else",
		Email: "dup@example.com", Phone: "+1 555 0101",
		ResumePath: "x.pdf", Status: models.StatusNew,
		CreatedAt: now, UpdatedAt: now,
	})
	assert.ErrorIs(t, err, store.ErrDuplicateKey)
}

func TestSubmission_Exists(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)
	job := createTestJob(t, s, orgID)
	createTestSubmission(t, s, job.ID, "here@example.com")

	exists, err := s.SubmissionExists(ctx, job.ID, "here@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.SubmissionExists(ctx, job.ID, "absent@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSubmission_UpdateScoreLeavesStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)
	job := createTestJob(t, s, orgID)
	sub := createTestSubmission(t, s, job.ID, "scored@example.com")

	details := models.ScoringDetails{
		Score:     85,
		Reasoning: "Strong Go and Postgres background",
		Strengths: []string{"go", "postgres"},
		Gaps:      []string{"kubernetes"},
	}
	require.NoError(t, s.UpdateSubmissionScore(ctx, sub.ID, details))

	got, _, err := s.GetSubmissionWithJob(ctx, sub.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Score)
	assert.Equal(t, 85, *got.Score)
	require.NotNil(t, got.ScoringDetails)
	assert.Equal(t, details, *got.ScoringDetails)
	assert.Equal(t, models.StatusNew, got.Status) // scoring never advances status
}

func TestSubmission_UpdateScoreNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)

	err := s.UpdateSubmissionScore(context.Background(), uuid.New(), models.ScoringDetails{Score: 50})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSubmission_MutatePersistsNotesAndStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)
	job := createTestJob(t, s, orgID)
	sub := createTestSubmission(t, s, job.ID, "mutate@example.com")

	updated, err := s.MutateSubmission(ctx, sub.ID, func(m *models.Submission) error {
		m.Status = models.StatusShortlisted
		m.ReviewerNotes.InterviewRounds = append(m.ReviewerNotes.InterviewRounds, models.InterviewRound{
			RoundNumber: m.ReviewerNotes.NextRoundNumber(),
			RoundType:   models.RoundPhoneScreen,
			Status:      models.RoundScheduled,
			Outcome:     models.OutcomePending,
			CreatedAt:   time.Now().UTC(),
		})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusShortlisted, updated.Status)

	got, _, err := s.GetSubmissionWithJob(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShortlisted, got.Status)
	require.Len(t, got.ReviewerNotes.InterviewRounds, 1)
	assert.Equal(t, 1, got.ReviewerNotes.InterviewRounds[0].RoundNumber)
}

func TestSubmission_MutateCallbackErrorRollsBack(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)
	job := createTestJob(t, s, orgID)
	sub := createTestSubmission(t, s, job.ID, "rollback@example.com")

	wantErr := assert.AnError
	_, err := s.MutateSubmission(ctx, sub.ID, func(m *models.Submission) error {
		m.Status = models.StatusHired
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	got, _, err := s.GetSubmissionWithJob(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, got.Status)
}

func TestSubmission_MutateNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)

	_, err := s.MutateSubmission(context.Background(), uuid.New(), func(m *models.Submission) error {
		return nil
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSubmission_ListFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)
	job := createTestJob(t, s, orgID)
	otherJob := createTestJob(t, s, orgID)

	createTestSubmission(t, s, job.ID, "a@example.com")
	shortlisted := createTestSubmission(t, s, job.ID, "b@example.com")
	createTestSubmission(t, s, otherJob.ID, "c@example.com")

	_, err := s.MutateSubmission(ctx, shortlisted.ID, func(m *models.Submission) error {
		m.Status = models.StatusShortlisted
		return nil
	})
	require.NoError(t, err)

	// All submissions for the org carry the job title.
	all, err := s.ListSubmissions(ctx, store.SubmissionFilter{OrgID: orgID})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Backend Engineer", all[0].JobTitle)

	// By job.
	byJob, err := s.ListSubmissions(ctx, store.SubmissionFilter{OrgID: orgID, JobID: job.ID})
	require.NoError(t, err)
	assert.Len(t, byJob, 2)

	// By status.
	byStatus, err := s.ListSubmissions(ctx, store.SubmissionFilter{
		OrgID:    orgID,
		Statuses: []models.SubmissionStatus{models.StatusShortlisted},
	})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, shortlisted.ID, byStatus[0].ID)

	// Foreign org sees nothing.
	foreign, err := s.ListSubmissions(ctx, store.SubmissionFilter{OrgID: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, foreign)
}

func TestSubmission_GetOrgScoped(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)
	job := createTestJob(t, s, orgID)
	sub := createTestSubmission(t, s, job.ID, "scoped@example.com")

	got, err := s.GetOrgSubmission(ctx, orgID, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)

	_, err = s.GetOrgSubmission(ctx, uuid.New(), sub.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSubmission_Counts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)
	job := createTestJob(t, s, orgID)

	createTestSubmission(t, s, job.ID, "a@example.com")
	hired := createTestSubmission(t, s, job.ID, "b@example.com")
	_, err := s.MutateSubmission(ctx, hired.ID, func(m *models.Submission) error {
		m.Status = models.StatusHired
		return nil
	})
	require.NoError(t, err)

	total, err := s.CountOrgSubmissions(ctx, orgID)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	hiredCount, err := s.CountOrgSubmissions(ctx, orgID, models.StatusHired)
	require.NoError(t, err)
	assert.Equal(t, 1, hiredCount)

	openJobs, err := s.CountOrgJobs(ctx, orgID, models.JobStatusPublished)
	require.NoError(t, err)
	assert.Equal(t, 1, openJobs)
}

func TestSubmission_RecentAndTimes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	orgID := createTestOrg(t, s)
	job := createTestJob(t, s, orgID)

	for _, email := range []string{"r1@example.com", "r2@example.com"} {
		createTestSubmission(t, s, job.ID, email)
	}
	scored := createTestSubmission(t, s, job.ID, "r3@example.com")
	require.NoError(t, s.UpdateSubmissionScore(ctx, scored.ID,
		models.ScoringDetails{Score: 72, Reasoning: "relevant experience"}))

	recent, err := s.RecentSubmissions(ctx, orgID, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
	assert.Equal(t, "Backend Engineer", recent[0].JobTitle)

	require.NotNil(t, recent[0].ScoringDetails)
	assert.Equal(t, 72, recent[0].ScoringDetails.Score)
	assert.Equal(t, "relevant experience", recent[0].ScoringDetails.Reasoning)
	assert.Nil(t, recent[1].ScoringDetails)

	times, err := s.SubmissionTimesSince(ctx, orgID, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	assert.Len(t, times, 3)
}

// --- Ping Test ---

func TestPing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)

	err := s.Ping(context.Background())
	assert.NoError(t, err)
}
