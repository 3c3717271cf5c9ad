package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/scot00671234/wishwello/internal/service"
	"github.com/scot00671234/wishwello/internal/transport/rest/middleware"
)

// TeamHandler handles team management endpoints
type TeamHandler struct {
	teamSvc *service.TeamService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamSvc *service.TeamService) *TeamHandler {
	return &TeamHandler{teamSvc: teamSvc}
}

// Create handles POST /v1/teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.TeamInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	team, err := h.teamSvc.Create(r.Context(), middleware.GetManagerID(r.Context()), req)
	if err != nil {
		writeTeamError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

// List handles GET /v1/teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamSvc.ListByManager(r.Context(), middleware.GetManagerID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list teams")
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// Get handles GET /v1/teams/{teamId}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamSvc.GetForManager(r.Context(), mux.Vars(r)["teamId"], middleware.GetManagerID(r.Context()))
	if err != nil {
		writeTeamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// Update handles PUT /v1/teams/{teamId}
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.TeamInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	team, err := h.teamSvc.Update(r.Context(), mux.Vars(r)["teamId"], middleware.GetManagerID(r.Context()), req)
	if err != nil {
		writeTeamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// Delete handles DELETE /v1/teams/{teamId}
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.teamSvc.Delete(r.Context(), mux.Vars(r)["teamId"], middleware.GetManagerID(r.Context()))
	if err != nil {
		writeTeamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// PutEmployees handles PUT /v1/teams/{teamId}/employees
func (h *TeamHandler) PutEmployees(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Emails []string `json:"emails"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	employees, err := h.teamSvc.ReplaceEmployees(r.Context(), mux.Vars(r)["teamId"], middleware.GetManagerID(r.Context()), req.Emails)
	if err != nil {
		writeTeamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

// GetEmployees handles GET /v1/teams/{teamId}/employees
func (h *TeamHandler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.teamSvc.ListEmployees(r.Context(), mux.Vars(r)["teamId"], middleware.GetManagerID(r.Context()))
	if err != nil {
		writeTeamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

// PutQuestions handles PUT /v1/teams/{teamId}/questions
func (h *TeamHandler) PutQuestions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Questions []service.QuestionInput `json:"questions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	questions, err := h.teamSvc.ReplaceQuestions(r.Context(), mux.Vars(r)["teamId"], middleware.GetManagerID(r.Context()), req.Questions)
	if err != nil {
		writeTeamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// GetQuestions handles GET /v1/teams/{teamId}/questions
func (h *TeamHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.teamSvc.ListQuestions(r.Context(), mux.Vars(r)["teamId"], middleware.GetManagerID(r.Context()))
	if err != nil {
		writeTeamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// PutSchedule handles PUT /v1/teams/{teamId}/schedule
func (h *TeamHandler) PutSchedule(w http.ResponseWriter, r *http.Request) {
	var req service.ScheduleInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	schedule, err := h.teamSvc.SaveSchedule(r.Context(), mux.Vars(r)["teamId"], middleware.GetManagerID(r.Context()), req)
	if err != nil {
		writeTeamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

// GetSchedule handles GET /v1/teams/{teamId}/schedule
func (h *TeamHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.teamSvc.GetSchedule(r.Context(), mux.Vars(r)["teamId"], middleware.GetManagerID(r.Context()))
	if err != nil {
		writeTeamError(w, err)
		return
	}
	if schedule == nil {
		writeError(w, http.StatusNotFound, "no schedule configured")
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

func writeTeamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTeamNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTeamNameRequired),
		errors.Is(err, service.ErrInvalidQuestionType),
		errors.Is(err, service.ErrInvalidSchedule):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
