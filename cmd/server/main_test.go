package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hubhr/hubhr/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStore implements the store surface healthHandler depends on.
type testStore struct {
	pingErr error
}

func (s *testStore) Ping(ctx context.Context) error { return s.pingErr }

func (s *testStore) CreateOrganization(ctx context.Context, org *models.Organization) error {
	return nil
}

func (s *testStore) GetOrganization(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	return nil, errors.New("not implemented")
}

func (s *testStore) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return nil, errors.New("not implemented")
}

func (s *testStore) SubmissionExists(ctx context.Context, jobID uuid.UUID, email string) (bool, error) {
	return false, nil
}

func (s *testStore) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	return nil
}

func (s *testStore) GetSubmissionWithJob(ctx context.Context, id uuid.UUID) (*models.Submission, *models.Job, error) {
	return nil, nil, errors.New("not implemented")
}

func (s *testStore) UpdateSubmissionScore(ctx context.Context, id uuid.UUID, details models.ScoringDetails) error {
	return nil
}

func (s *testStore) MutateSubmission(ctx context.Context, id uuid.UUID, fn func(*models.Submission) error) (*models.Submission, error) {
	return nil, errors.New("not implemented")
}

func (s *testStore) GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error) {
	return nil, nil
}

func (s *testStore) UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error { return nil }

// testCache implements the cache surface healthHandler depends on.
type testCache struct {
	pingErr error
}

func (c *testCache) Ping(ctx context.Context) error { return c.pingErr }

func (c *testCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (c *testCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *testCache) Delete(ctx context.Context, key string) error { return nil }

func (c *testCache) SetScoringStatus(ctx context.Context, submissionID uuid.UUID, status string, ttl time.Duration) error {
	return nil
}

func (c *testCache) GetScoringStatus(ctx context.Context, submissionID uuid.UUID) (string, bool, error) {
	return "", false, nil
}

func (c *testCache) IncrWithExpiry(ctx context.Context, key string, expiry time.Duration) (int64, error) {
	return 1, nil
}

func decodeHealth(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&payload))
	return payload
}

func TestHealthHandler_AllHealthy(t *testing.T) {
	h := healthHandler(&testStore{}, &testCache{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	payload := decodeHealth(t, rec.Body)
	assert.Equal(t, "ok", payload["status"])

	services := payload["services"].(map[string]any)
	assert.Equal(t, "ok", services["database"])
	assert.Equal(t, "ok", services["cache"])
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	h := healthHandler(&testStore{pingErr: errors.New("connection refused")}, &testCache{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	payload := decodeHealth(t, rec.Body)
	assert.Equal(t, "degraded", payload["status"])

	services := payload["services"].(map[string]any)
	assert.Equal(t, "unreachable", services["database"])
	assert.Equal(t, "ok", services["cache"])
}

func TestHealthHandler_CacheDown(t *testing.T) {
	h := healthHandler(&testStore{}, &testCache{pingErr: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	payload := decodeHealth(t, rec.Body)
	services := payload["services"].(map[string]any)
	assert.Equal(t, "ok", services["database"])
	assert.Equal(t, "unreachable", services["cache"])
}

func TestHealthHandler_BothDown(t *testing.T) {
	h := healthHandler(
		&testStore{pingErr: errors.New("db down")},
		&testCache{pingErr: errors.New("cache down")},
	)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	payload := decodeHealth(t, rec.Body)
	assert.Equal(t, "degraded", payload["status"])
}

func TestRun_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("STORAGE_ENDPOINT", "localhost:9000")
	t.Setenv("STORAGE_ACCESS_KEY", "minio")
	t.Setenv("STORAGE_SECRET_KEY", "minio123")
	t.Setenv("AI_PROVIDER", "mock")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := run(logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestRun_MissingStorageCredentials(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/hubhr")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("STORAGE_ENDPOINT", "localhost:9000")
	t.Setenv("STORAGE_ACCESS_KEY", "")
	t.Setenv("STORAGE_SECRET_KEY", "")
	t.Setenv("AI_PROVIDER", "mock")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := run(logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_ACCESS_KEY")
}

func TestShutdownTimeoutIsReasonable(t *testing.T) {
	assert.Equal(t, 30*time.Second, shutdownTimeout)
}
