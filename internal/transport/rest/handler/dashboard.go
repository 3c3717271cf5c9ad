package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/scot00671234/wishwello/internal/model"
	"github.com/scot00671234/wishwello/internal/service"
	"github.com/scot00671234/wishwello/internal/transport/rest/middleware"
)

// DashboardHandler handles the manager dashboard and analytics endpoints
type DashboardHandler struct {
	dashboardSvc *service.DashboardService
	analyticsSvc *service.AnalyticsService
	teamSvc      *service.TeamService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardSvc *service.DashboardService, analyticsSvc *service.AnalyticsService, teamSvc *service.TeamService) *DashboardHandler {
	return &DashboardHandler{
		dashboardSvc: dashboardSvc,
		analyticsSvc: analyticsSvc,
		teamSvc:      teamSvc,
	}
}

// Get handles GET /v1/teams/{teamId}/dashboard
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	data, err := h.dashboardSvc.Data(r.Context(), mux.Vars(r)["teamId"], middleware.GetManagerID(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		// The dashboard UI expects the empty placeholder state on failure,
		// not an error payload
		writeJSON(w, http.StatusOK, &model.DashboardData{
			PulseHistory:   []model.PulsePoint{},
			RecentComments: []model.RecentComment{},
		})
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// Analytics handles GET /v1/teams/{teamId}/analytics?from=&to=
func (h *DashboardHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["teamId"]

	if _, err := h.teamSvc.GetForManager(r.Context(), teamID, middleware.GetManagerID(r.Context())); err != nil {
		writeError(w, http.StatusNotFound, "team not found")
		return
	}

	from, ok := parseDateParam(r, "from")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid from date")
		return
	}
	to, ok := parseDateParam(r, "to")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid to date")
		return
	}

	report, err := h.analyticsSvc.Report(r.Context(), teamID, from, to)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, &model.AnalyticsReport{
			QuestionAnalytics: []model.QuestionAnalytics{},
			OverallInsights:   []string{},
		})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// parseDateParam accepts RFC 3339 or plain dates; absent means open bound
func parseDateParam(r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
