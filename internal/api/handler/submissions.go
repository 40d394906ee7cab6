package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	mw "github.com/hubhr/hubhr/internal/api/middleware"
	"github.com/hubhr/hubhr/internal/api/response"
	"github.com/hubhr/hubhr/internal/store"
	"github.com/hubhr/hubhr/pkg/models"
)

// SubmissionStore is the submission access the handlers need.
type SubmissionStore interface {
	ListSubmissions(ctx context.Context, f store.SubmissionFilter) ([]*models.Submission, error)
	GetOrgSubmission(ctx context.Context, orgID, id uuid.UUID) (*models.Submission, error)
}

// ResumeLinker produces time-limited download URLs for stored resumes.
type ResumeLinker interface {
	SignedURL(ctx context.Context, bucket, key string) (string, error)
}

// ScoringStatusReader reports in-flight scoring progress.
type ScoringStatusReader interface {
	GetScoringStatus(ctx context.Context, submissionID uuid.UUID) (string, bool, error)
}

// NewListSubmissionsHandler returns the handler for GET /api/v1/submissions.
// Optional query params: job_id, email, status (comma separated).
func NewListSubmissionsHandler(st SubmissionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := mw.GetOrgID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing organization", nil)
			return
		}

		filter := store.SubmissionFilter{OrgID: orgID}

		if raw := r.URL.Query().Get("job_id"); raw != "" {
			jobID, err := uuid.Parse(raw)
			if err != nil {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid job_id", nil)
				return
			}
			filter.JobID = jobID
		}

		if raw := r.URL.Query().Get("email"); raw != "" {
			filter.Email = strings.ToLower(strings.TrimSpace(raw))
		}

		if raw := r.URL.Query().Get("status"); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				status := models.SubmissionStatus(strings.TrimSpace(part))
				if !status.IsValid() {
					response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
						"Unknown status "+string(status), nil)
					return
				}
				filter.Statuses = append(filter.Statuses, status)
			}
		}

		subs, err := st.ListSubmissions(r.Context(), filter)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to list submissions", nil)
			return
		}
		if subs == nil {
			subs = []*models.Submission{}
		}

		response.JSON(w, subs)
	}
}

// NewGetSubmissionHandler returns the handler for GET /api/v1/submissions/{submissionID}.
// The detail view enriches the row with a signed resume URL and, while the
// scorer is still working, the live scoring status.
func NewGetSubmissionHandler(st SubmissionStore, resumes ResumeLinker, scoring ScoringStatusReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := mw.GetOrgID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing organization", nil)
			return
		}
		subID, err := uuid.Parse(chi.URLParam(r, "submissionID"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid submission ID", nil)
			return
		}

		sub, err := st.GetOrgSubmission(r.Context(), orgID, subID)
		if errors.Is(err, store.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "SUBMISSION_NOT_FOUND", "Submission not found", nil)
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		// Resume link is best effort; the submission itself is the payload.
		if sub.ResumePath != "" {
			if url, err := resumes.SignedURL(r.Context(), orgID.String(), sub.ResumePath); err == nil {
				sub.ResumeURL = url
			}
		}

		payload := map[string]any{"submission": sub}
		if sub.Score == nil {
			if status, found, err := scoring.GetScoringStatus(r.Context(), sub.ID); err == nil && found {
				payload["scoring_status"] = status
			}
		}

		response.JSON(w, payload)
	}
}
