// Package api wires handlers and middleware into the HTTP router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	mw "github.com/hubhr/hubhr/internal/api/middleware"
	"github.com/hubhr/hubhr/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	Auth      *mw.Auth
	RateLimit *mw.RateLimit

	HealthHandler http.HandlerFunc

	// Public candidate surface.
	PublicJobHandler http.HandlerFunc
	ApplyHandler     http.HandlerFunc

	// Staff surface.
	ListJobs       http.HandlerFunc
	CreateJob      http.HandlerFunc
	GetJob         http.HandlerFunc
	UpdateJob      http.HandlerFunc
	ListSubs       http.HandlerFunc
	GetSub         http.HandlerFunc
	Lifecycles     *Lifecycles
	DashStats      http.HandlerFunc
	DashApps       http.HandlerFunc
	DashActivity   http.HandlerFunc

	// Admin surface.
	CreateKeyHandler http.HandlerFunc
	ListKeysHandler  http.HandlerFunc
	RevokeKeyHandler http.HandlerFunc
}

// Lifecycles mirrors handler.Lifecycles method set as plain handler funcs
// so the router package stays free of handler imports.
type Lifecycles struct {
	UpdateStatus      http.HandlerFunc
	ScheduleInterview http.HandlerFunc
	StartInterview    http.HandlerFunc
	CompleteInterview http.HandlerFunc
	ScheduleRound     http.HandlerFunc
	CompleteRound     http.HandlerFunc
	Select            http.HandlerFunc
	Reject            http.HandlerFunc
	Feedback          http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	// Public routes: health, job detail, apply.
	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))
	r.Get("/api/v1/public/jobs/{jobID}", orNotImplemented(deps.PublicJobHandler))
	r.Post("/api/v1/public/jobs/{jobID}/apply", orNotImplemented(deps.ApplyHandler))

	// Protected staff routes
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.Authenticate)
		r.Use(deps.RateLimit.Limit)

		r.Get("/api/v1/jobs", orNotImplemented(deps.ListJobs))
		r.Post("/api/v1/jobs", orNotImplemented(deps.CreateJob))
		r.Get("/api/v1/jobs/{jobID}", orNotImplemented(deps.GetJob))
		r.Patch("/api/v1/jobs/{jobID}", orNotImplemented(deps.UpdateJob))

		r.Get("/api/v1/submissions", orNotImplemented(deps.ListSubs))
		r.Get("/api/v1/submissions/{submissionID}", orNotImplemented(deps.GetSub))

		if lc := deps.Lifecycles; lc != nil {
			r.Patch("/api/v1/submissions/{submissionID}/status", orNotImplemented(lc.UpdateStatus))
			r.Post("/api/v1/submissions/{submissionID}/interview", orNotImplemented(lc.ScheduleInterview))
			r.Post("/api/v1/submissions/{submissionID}/interview/start", orNotImplemented(lc.StartInterview))
			r.Post("/api/v1/submissions/{submissionID}/interview/complete", orNotImplemented(lc.CompleteInterview))
			r.Post("/api/v1/submissions/{submissionID}/rounds", orNotImplemented(lc.ScheduleRound))
			r.Post("/api/v1/submissions/{submissionID}/rounds/{roundNumber}/complete", orNotImplemented(lc.CompleteRound))
			r.Post("/api/v1/submissions/{submissionID}/select", orNotImplemented(lc.Select))
			r.Post("/api/v1/submissions/{submissionID}/reject", orNotImplemented(lc.Reject))
			r.Post("/api/v1/submissions/{submissionID}/feedback", orNotImplemented(lc.Feedback))
		}

		r.Get("/api/v1/dashboard/stats", orNotImplemented(deps.DashStats))
		r.Get("/api/v1/dashboard/applications", orNotImplemented(deps.DashApps))
		r.Get("/api/v1/dashboard/activity", orNotImplemented(deps.DashActivity))

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.RequireScope("admin"))

			r.Post("/api/v1/admin/keys", orNotImplemented(deps.CreateKeyHandler))
			r.Get("/api/v1/admin/keys", orNotImplemented(deps.ListKeysHandler))
			r.Delete("/api/v1/admin/keys/{keyID}", orNotImplemented(deps.RevokeKeyHandler))
		})
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
