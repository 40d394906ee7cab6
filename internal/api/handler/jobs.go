package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	mw "github.com/hubhr/hubhr/internal/api/middleware"
	"github.com/hubhr/hubhr/internal/api/response"
	"github.com/hubhr/hubhr/internal/cache"
	"github.com/hubhr/hubhr/internal/store"
	"github.com/hubhr/hubhr/pkg/models"
)

// JobStore is the job access the handlers need.
type JobStore interface {
	GetPublishedJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error)
	GetOrgJob(ctx context.Context, orgID, jobID uuid.UUID) (*models.Job, error)
	CreateJob(ctx context.Context, job *models.Job) error
	UpdateJob(ctx context.Context, orgID, jobID uuid.UUID, upd store.JobUpdate) (*models.Job, error)
	ListOrgJobs(ctx context.Context, orgID uuid.UUID) ([]*models.JobWithStats, error)
}

// jobDetailTTL caches the public job detail, the hottest anonymous read.
const jobDetailTTL = 5 * time.Minute

// NewPublicJobHandler returns the handler for GET /api/v1/public/jobs/{jobID}.
// Only published jobs are visible without authentication; the rendered
// detail is cached briefly since application forms change rarely.
func NewPublicJobHandler(st JobStore, ca ByteCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID, err := uuid.Parse(chi.URLParam(r, "jobID"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid job ID", nil)
			return
		}

		key := cache.JobDetailKey(jobID)
		if raw, found, err := ca.Get(r.Context(), key); err == nil && found {
			var cached models.Job
			if json.Unmarshal(raw, &cached) == nil {
				response.JSON(w, &cached)
				return
			}
		}

		job, err := st.GetPublishedJob(r.Context(), jobID)
		if errors.Is(err, store.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "JOB_NOT_FOUND", "Job not found", nil)
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		if raw, err := json.Marshal(job); err == nil {
			ca.Set(r.Context(), key, raw, jobDetailTTL)
		}
		response.JSON(w, job)
	}
}

type jobRequest struct {
	Title          string              `json:"title"`
	Team           *string             `json:"team"`
	Role           *string             `json:"role"`
	ShortSummary   *string             `json:"short_summary"`
	ContentMD      *string             `json:"content_md"`
	RequiredSkills []string            `json:"required_skills"`
	Location       *string             `json:"location"`
	EmploymentType *string             `json:"employment_type"`
	ApplyFields    []models.ApplyField `json:"apply_fields"`
	Status         *string             `json:"status"`
}

// NewCreateJobHandler returns the handler for POST /api/v1/jobs.
func NewCreateJobHandler(st JobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := mw.GetOrgID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing organization", nil)
			return
		}

		var req jobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "title is required", nil)
			return
		}

		status := models.JobStatusDraft
		if req.Status != nil {
			status = *req.Status
		}
		if status != models.JobStatusDraft && status != models.JobStatusPublished {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"status must be draft or published", nil)
			return
		}

		now := time.Now().UTC()
		job := &models.Job{
			ID:             uuid.New(),
			OrgID:          orgID,
			Title:          strings.TrimSpace(req.Title),
			Team:           req.Team,
			Role:           req.Role,
			ShortSummary:   req.ShortSummary,
			ContentMD:      req.ContentMD,
			RequiredSkills: req.RequiredSkills,
			Location:       req.Location,
			EmploymentType: req.EmploymentType,
			ApplyFields:    req.ApplyFields,
			Status:         status,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if job.RequiredSkills == nil {
			job.RequiredSkills = []string{}
		}
		if job.ApplyFields == nil {
			job.ApplyFields = []models.ApplyField{}
		}
		if status == models.JobStatusPublished {
			job.PublishedAt = &now
		}

		if err := st.CreateJob(r.Context(), job); err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to create job", nil)
			return
		}

		response.Created(w, job)
	}
}

// NewUpdateJobHandler returns the handler for PATCH /api/v1/jobs/{jobID}.
func NewUpdateJobHandler(st JobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := mw.GetOrgID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing organization", nil)
			return
		}
		jobID, err := uuid.Parse(chi.URLParam(r, "jobID"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid job ID", nil)
			return
		}

		var req jobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		upd := store.JobUpdate{
			Team:           req.Team,
			Role:           req.Role,
			ShortSummary:   req.ShortSummary,
			ContentMD:      req.ContentMD,
			RequiredSkills: req.RequiredSkills,
			Location:       req.Location,
			EmploymentType: req.EmploymentType,
			ApplyFields:    req.ApplyFields,
		}
		if strings.TrimSpace(req.Title) != "" {
			title := strings.TrimSpace(req.Title)
			upd.Title = &title
		}
		if req.Status != nil {
			switch *req.Status {
			case models.JobStatusDraft, models.JobStatusPublished, models.JobStatusArchived:
				upd.Status = req.Status
			default:
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
					"status must be draft, published, or archived", nil)
				return
			}
		}

		job, err := st.UpdateJob(r.Context(), orgID, jobID, upd)
		if errors.Is(err, store.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "JOB_NOT_FOUND", "Job not found", nil)
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to update job", nil)
			return
		}

		response.JSON(w, job)
	}
}

// NewListJobsHandler returns the handler for GET /api/v1/jobs.
func NewListJobsHandler(st JobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := mw.GetOrgID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing organization", nil)
			return
		}

		jobs, err := st.ListOrgJobs(r.Context(), orgID)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to list jobs", nil)
			return
		}
		if jobs == nil {
			jobs = []*models.JobWithStats{}
		}

		response.JSON(w, jobs)
	}
}

// NewGetJobHandler returns the handler for GET /api/v1/jobs/{jobID} on the
// staff surface, which sees drafts and archived jobs too.
func NewGetJobHandler(st JobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := mw.GetOrgID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing organization", nil)
			return
		}
		jobID, err := uuid.Parse(chi.URLParam(r, "jobID"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid job ID", nil)
			return
		}

		job, err := st.GetOrgJob(r.Context(), orgID, jobID)
		if errors.Is(err, store.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "JOB_NOT_FOUND", "Job not found", nil)
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.JSON(w, job)
	}
}
