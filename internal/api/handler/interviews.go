package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	mw "github.com/hubhr/hubhr/internal/api/middleware"
	"github.com/hubhr/hubhr/internal/api/response"
	"github.com/hubhr/hubhr/internal/interview"
	"github.com/hubhr/hubhr/internal/store"
	"github.com/hubhr/hubhr/pkg/models"
)

// Lifecycle is the interview manager surface the handlers need.
type Lifecycle interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, newStatus models.SubmissionStatus) (*models.Submission, error)
	ScheduleInterview(ctx context.Context, id uuid.UUID, params interview.ScheduleParams) (*models.Submission, error)
	StartInterview(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	MarkInterviewComplete(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	ScheduleRound(ctx context.Context, id uuid.UUID, params interview.RoundParams) (*models.Submission, error)
	CompleteRound(ctx context.Context, id uuid.UUID, roundNumber int, outcome models.RoundOutcome, feedback string) (*models.Submission, error)
	SelectCandidate(ctx context.Context, id uuid.UUID, notes string) (*models.Submission, error)
	RejectCandidate(ctx context.Context, id uuid.UUID, reason, notes string) (*models.Submission, error)
	AddFeedback(ctx context.Context, id uuid.UUID, params interview.FeedbackParams) (*models.Submission, error)
}

// Lifecycles holds the dependencies shared by all lifecycle endpoints.
// Every operation first resolves the submission within the caller's org so
// keys can never act on another organization's candidates.
type Lifecycles struct {
	Manager Lifecycle
	Store   SubmissionStore
}

// resolve parses {submissionID} and checks org ownership.
func (h *Lifecycles) resolve(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	orgID, ok := mw.GetOrgID(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing organization", nil)
		return uuid.Nil, false
	}
	subID, err := uuid.Parse(chi.URLParam(r, "submissionID"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid submission ID", nil)
		return uuid.Nil, false
	}

	if _, err := h.Store.GetOrgSubmission(r.Context(), orgID, subID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "SUBMISSION_NOT_FOUND", "Submission not found", nil)
		} else {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
		}
		return uuid.Nil, false
	}
	return subID, true
}

func writeLifecycleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interview.ErrInvalidTransition):
		response.Error(w, http.StatusConflict, "INVALID_TRANSITION", err.Error(), nil)
	case errors.Is(err, interview.ErrRoundNotFound):
		response.Error(w, http.StatusNotFound, "ROUND_NOT_FOUND", err.Error(), nil)
	case errors.Is(err, interview.ErrRoundClosed):
		response.Error(w, http.StatusConflict, "ROUND_CLOSED", err.Error(), nil)
	case errors.Is(err, interview.ErrInvalidRoundType), errors.Is(err, interview.ErrInvalidOutcome):
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	case errors.Is(err, store.ErrNotFound):
		response.Error(w, http.StatusNotFound, "SUBMISSION_NOT_FOUND", "Submission not found", nil)
	default:
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"An unexpected error occurred", nil)
	}
}

// UpdateStatus handles PATCH /api/v1/submissions/{submissionID}/status.
func (h *Lifecycles) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	subID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		Status models.SubmissionStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return
	}

	sub, err := h.Manager.UpdateStatus(r.Context(), subID, req.Status)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}
	response.JSON(w, sub)
}

// ScheduleInterview handles POST /api/v1/submissions/{submissionID}/interview.
func (h *Lifecycles) ScheduleInterview(w http.ResponseWriter, r *http.Request) {
	subID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		Date        string `json:"date"`
		Time        string `json:"time"`
		Interviewer string `json:"interviewer"`
		Notes       string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return
	}
	if req.Date == "" {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "date is required", nil)
		return
	}

	sub, err := h.Manager.ScheduleInterview(r.Context(), subID, interview.ScheduleParams{
		Date:        req.Date,
		Time:        req.Time,
		Interviewer: req.Interviewer,
		Notes:       req.Notes,
	})
	if err != nil {
		writeLifecycleError(w, err)
		return
	}
	response.JSON(w, sub)
}

// StartInterview handles POST /api/v1/submissions/{submissionID}/interview/start.
func (h *Lifecycles) StartInterview(w http.ResponseWriter, r *http.Request) {
	subID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	sub, err := h.Manager.StartInterview(r.Context(), subID)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}
	response.JSON(w, sub)
}

// CompleteInterview handles POST /api/v1/submissions/{submissionID}/interview/complete.
func (h *Lifecycles) CompleteInterview(w http.ResponseWriter, r *http.Request) {
	subID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	sub, err := h.Manager.MarkInterviewComplete(r.Context(), subID)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}
	response.JSON(w, sub)
}

// ScheduleRound handles POST /api/v1/submissions/{submissionID}/rounds.
func (h *Lifecycles) ScheduleRound(w http.ResponseWriter, r *http.Request) {
	subID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		RoundType        models.RoundType `json:"round_type"`
		Date             string           `json:"date"`
		Time             string           `json:"time"`
		Interviewer      string           `json:"interviewer"`
		InterviewerEmail string           `json:"interviewer_email"`
		Notes            string           `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return
	}

	sub, err := h.Manager.ScheduleRound(r.Context(), subID, interview.RoundParams{
		Type:             req.RoundType,
		Date:             req.Date,
		Time:             req.Time,
		Interviewer:      req.Interviewer,
		InterviewerEmail: req.InterviewerEmail,
		Notes:            req.Notes,
	})
	if err != nil {
		writeLifecycleError(w, err)
		return
	}
	response.JSON(w, sub)
}

// CompleteRound handles POST /api/v1/submissions/{submissionID}/rounds/{roundNumber}/complete.
func (h *Lifecycles) CompleteRound(w http.ResponseWriter, r *http.Request) {
	subID, ok := h.resolve(w, r)
	if !ok {
		return
	}
	roundNumber, err := strconv.Atoi(chi.URLParam(r, "roundNumber"))
	if err != nil || roundNumber < 1 {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid round number", nil)
		return
	}

	var req struct {
		Outcome  models.RoundOutcome `json:"outcome"`
		Feedback string              `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return
	}

	sub, err := h.Manager.CompleteRound(r.Context(), subID, roundNumber, req.Outcome, req.Feedback)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}
	response.JSON(w, sub)
}

// Select handles POST /api/v1/submissions/{submissionID}/select.
func (h *Lifecycles) Select(w http.ResponseWriter, r *http.Request) {
	subID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return
	}

	sub, err := h.Manager.SelectCandidate(r.Context(), subID, req.Notes)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}
	response.JSON(w, sub)
}

// Reject handles POST /api/v1/submissions/{submissionID}/reject.
func (h *Lifecycles) Reject(w http.ResponseWriter, r *http.Request) {
	subID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
		Notes  string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return
	}

	sub, err := h.Manager.RejectCandidate(r.Context(), subID, req.Reason, req.Notes)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}
	response.JSON(w, sub)
}

// Feedback handles POST /api/v1/submissions/{submissionID}/feedback.
func (h *Lifecycles) Feedback(w http.ResponseWriter, r *http.Request) {
	subID, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req struct {
		Rating      *int   `json:"rating"`
		Notes       string `json:"notes"`
		Interviewer string `json:"interviewer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "rating must be 1-5", nil)
		return
	}

	sub, err := h.Manager.AddFeedback(r.Context(), subID, interview.FeedbackParams{
		Rating:      req.Rating,
		Notes:       req.Notes,
		Interviewer: req.Interviewer,
	})
	if err != nil {
		writeLifecycleError(w, err)
		return
	}
	response.JSON(w, sub)
}
