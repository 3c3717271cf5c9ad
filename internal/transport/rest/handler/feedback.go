package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/scot00671234/wishwello/internal/model"
	"github.com/scot00671234/wishwello/internal/service"
)

// FeedbackHandler handles the public survey endpoints. These are reachable
// without authentication; the unguessable team id in the link is the only
// gate, and submissions never carry respondent identity.
type FeedbackHandler struct {
	feedbackSvc *service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackSvc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackSvc: feedbackSvc}
}

// GetForm handles GET /v1/feedback/{teamId}
func (h *FeedbackHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	team, questions, err := h.feedbackSvc.GetForm(r.Context(), mux.Vars(r)["teamId"])
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load survey")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"team": model.TeamSummary{
			Name:        team.Name,
			CompanyName: team.CompanyName,
		},
		"questions": questions,
	})
}

// Submit handles POST /v1/feedback/{teamId}
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answers []service.SubmittedAnswer `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stored, err := h.feedbackSvc.Submit(r.Context(), mux.Vars(r)["teamId"], req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEmptySubmission):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to store feedback")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"stored": stored})
}
