package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	mw "github.com/hubhr/hubhr/internal/api/middleware"
	"github.com/hubhr/hubhr/internal/api/response"
	"github.com/hubhr/hubhr/internal/cache"
	"github.com/hubhr/hubhr/internal/dashboard"
)

// statsTTL bounds how stale the cached overview counts can get.
const statsTTL = 60 * time.Second

// DashboardService is the aggregation surface the handlers need.
type DashboardService interface {
	Stats(ctx context.Context, orgID uuid.UUID) (*dashboard.Stats, error)
	ApplicationSeries(ctx context.Context, orgID uuid.UUID) ([]dashboard.SeriesPoint, error)
	RecentActivity(ctx context.Context, orgID uuid.UUID, limit int) ([]dashboard.ActivityEntry, error)
}

// ByteCache is the short-TTL response cache shared by read-heavy handlers.
type ByteCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// NewDashboardStatsHandler returns the handler for GET /api/v1/dashboard/stats.
// Stats are cached per organization; the cache is best effort on both sides.
func NewDashboardStatsHandler(svc DashboardService, ca ByteCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := mw.GetOrgID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing organization", nil)
			return
		}

		key := cache.DashboardStatsKey(orgID)
		if raw, found, err := ca.Get(r.Context(), key); err == nil && found {
			var cached dashboard.Stats
			if json.Unmarshal(raw, &cached) == nil {
				response.JSON(w, &cached)
				return
			}
		}

		stats, err := svc.Stats(r.Context(), orgID)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to compute dashboard stats", nil)
			return
		}
		if raw, err := json.Marshal(stats); err == nil {
			ca.Set(r.Context(), key, raw, statsTTL)
		}
		response.JSON(w, stats)
	}
}

// NewApplicationSeriesHandler returns the handler for GET /api/v1/dashboard/applications.
func NewApplicationSeriesHandler(svc DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := mw.GetOrgID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing organization", nil)
			return
		}

		series, err := svc.ApplicationSeries(r.Context(), orgID)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to compute application series", nil)
			return
		}
		response.JSON(w, series)
	}
}

// NewRecentActivityHandler returns the handler for GET /api/v1/dashboard/activity.
func NewRecentActivityHandler(svc DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := mw.GetOrgID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing organization", nil)
			return
		}

		limit := 5
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 50 {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
					"limit must be between 1 and 50", nil)
				return
			}
			limit = n
		}

		entries, err := svc.RecentActivity(r.Context(), orgID, limit)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to load recent activity", nil)
			return
		}
		if entries == nil {
			entries = []dashboard.ActivityEntry{}
		}
		response.JSON(w, entries)
	}
}
