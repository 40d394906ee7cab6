// Package handler contains the HTTP handlers. Each handler depends on a
// narrow local interface so tests can substitute fakes without touching
// the real services.
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hubhr/hubhr/internal/api/response"
	"github.com/hubhr/hubhr/internal/intake"
	"github.com/hubhr/hubhr/pkg/models"
)

// maxApplyBodyBytes bounds the whole multipart request, resume included.
const maxApplyBodyBytes = 10 << 20 // 10 MiB

// IntakeService accepts one candidate application.
type IntakeService interface {
	Submit(ctx context.Context, app intake.Application) (*models.Submission, error)
}

// NewApplyHandler returns the handler for POST /api/v1/jobs/{jobID}/apply.
// The endpoint is public and consumes multipart form data with a resume file.
func NewApplyHandler(svc IntakeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID, err := uuid.Parse(chi.URLParam(r, "jobID"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid job ID", nil)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxApplyBodyBytes)
		if err := r.ParseMultipartForm(maxApplyBodyBytes); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"Request must be multipart form data within the size limit", nil)
			return
		}

		app := intake.Application{
			JobID:       jobID,
			Name:        r.FormValue("name"),
			Email:       r.FormValue("email"),
			Phone:       r.FormValue("phone"),
			CoverLetter: r.FormValue("cover_letter"),
		}

		file, header, err := r.FormFile("resume")
		if err == nil {
			defer file.Close()
			data, readErr := io.ReadAll(file)
			if readErr != nil {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
					"Failed to read resume file", nil)
				return
			}
			app.Resume = data
			app.ResumeFilename = header.Filename
			app.ResumeMIME = header.Header.Get("Content-Type")
		}

		sub, err := svc.Submit(r.Context(), app)
		if err != nil {
			writeApplyError(w, err)
			return
		}

		response.Created(w, map[string]any{
			"id":     sub.ID,
			"job_id": sub.JobID,
			"status": sub.Status,
		})
	}
}

func writeApplyError(w http.ResponseWriter, err error) {
	var verr *intake.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message,
			map[string]string{"field": verr.Field})
	case errors.Is(err, intake.ErrDuplicateApplication):
		response.Error(w, http.StatusConflict, "DUPLICATE_APPLICATION",
			"An application for this job with this email already exists", nil)
	case errors.Is(err, intake.ErrInvalidJob):
		response.Error(w, http.StatusNotFound, "JOB_NOT_FOUND",
			"Job not found or not accepting applications", nil)
	case errors.Is(err, intake.ErrStorage):
		response.Error(w, http.StatusBadGateway, "STORAGE_ERROR",
			"Resume could not be stored, please retry", nil)
	default:
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"An unexpected error occurred", nil)
	}
}
