package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hubhr/hubhr/internal/ai"
	"github.com/hubhr/hubhr/internal/api"
	"github.com/hubhr/hubhr/internal/api/handler"
	mw "github.com/hubhr/hubhr/internal/api/middleware"
	"github.com/hubhr/hubhr/internal/cache"
	"github.com/hubhr/hubhr/internal/config"
	"github.com/hubhr/hubhr/internal/dashboard"
	"github.com/hubhr/hubhr/internal/intake"
	"github.com/hubhr/hubhr/internal/interview"
	"github.com/hubhr/hubhr/internal/scoring"
	"github.com/hubhr/hubhr/internal/storage"
	"github.com/hubhr/hubhr/internal/store"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := store.RunMigrations(cfg.Database.URL, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations applied")

	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("create redis cache: %w", err)
	}
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	resumes, err := storage.NewMinioStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("create resume store: %w", err)
	}

	scorer, err := ai.NewScorer(ctx, cfg.AI)
	if err != nil {
		return fmt.Errorf("create AI scorer: %w", err)
	}
	logger.Info("AI scorer initialized", "provider", scorer.Name())

	pgStore := store.NewPostgresStore(pool)

	scoringPool := scoring.NewPool(cfg.Scoring, pgStore, resumes, redisCache, scorer,
		cfg.AI.InferenceTimeout, logger)
	scoringPool.Start()

	intakeSvc := intake.NewService(pgStore, resumes, scoringPool, logger)
	lifecycle := interview.NewManager(pgStore, logger)
	dash := dashboard.NewService(pgStore)

	lifecycles := &handler.Lifecycles{Manager: lifecycle, Store: pgStore}

	deps := api.Dependencies{
		Auth:      mw.NewAuth(pgStore),
		RateLimit: mw.NewRateLimit(redisCache, 60),

		HealthHandler: healthHandler(pgStore, redisCache),

		PublicJobHandler: handler.NewPublicJobHandler(pgStore, redisCache),
		ApplyHandler:     handler.NewApplyHandler(intakeSvc),

		ListJobs:  handler.NewListJobsHandler(pgStore),
		CreateJob: handler.NewCreateJobHandler(pgStore),
		GetJob:    handler.NewGetJobHandler(pgStore),
		UpdateJob: handler.NewUpdateJobHandler(pgStore),

		ListSubs: handler.NewListSubmissionsHandler(pgStore),
		GetSub:   handler.NewGetSubmissionHandler(pgStore, resumes, redisCache),

		Lifecycles: &api.Lifecycles{
			UpdateStatus:      lifecycles.UpdateStatus,
			ScheduleInterview: lifecycles.ScheduleInterview,
			StartInterview:    lifecycles.StartInterview,
			CompleteInterview: lifecycles.CompleteInterview,
			ScheduleRound:     lifecycles.ScheduleRound,
			CompleteRound:     lifecycles.CompleteRound,
			Select:            lifecycles.Select,
			Reject:            lifecycles.Reject,
			Feedback:          lifecycles.Feedback,
		},

		DashStats:    handler.NewDashboardStatsHandler(dash, redisCache),
		DashApps:     handler.NewApplicationSeriesHandler(dash),
		DashActivity: handler.NewRecentActivityHandler(dash),

		CreateKeyHandler: handler.NewCreateKeyHandler(pgStore),
		ListKeysHandler:  handler.NewListKeysHandler(pgStore),
		RevokeKeyHandler: handler.NewRevokeKeyHandler(pgStore),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	// Stop accepting scoring work and drain what is already queued.
	scoringPool.Close()

	logger.Info("server stopped")
	return nil
}

// healthHandler reports the health of the server and its dependencies.
// Returns 503 with per-service detail when any dependency check fails.
func healthHandler(s store.AdminStore, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{
			"database": "ok",
			"cache":    "ok",
		}
		healthy := true

		if err := s.Ping(ctx); err != nil {
			checks["database"] = "unreachable"
			healthy = false
		}
		if err := c.Ping(ctx); err != nil {
			checks["cache"] = "unreachable"
			healthy = false
		}

		w.Header().Set("Content-Type", "application/json")
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]any{
				"status":   "degraded",
				"services": checks,
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}
