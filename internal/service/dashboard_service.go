package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/scot00671234/wishwello/internal/model"
	"github.com/scot00671234/wishwello/internal/repository"
)

const (
	dashboardHistoryLimit = 10
	dashboardCommentLimit = 10

	// Dashboard comments use a higher bar than the analytics view so the
	// headline page only shows substantive text.
	minDashboardCommentLength = 10
)

// DashboardService assembles the manager dashboard payload
type DashboardService struct {
	teamRepo     repository.TeamRepo
	pulseRepo    repository.PulseScoreRepo
	responseRepo repository.ResponseRepo
	employeeRepo repository.EmployeeRepo
	questionRepo repository.QuestionRepo
	log          *logrus.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	teamRepo repository.TeamRepo,
	pulseRepo repository.PulseScoreRepo,
	responseRepo repository.ResponseRepo,
	employeeRepo repository.EmployeeRepo,
	questionRepo repository.QuestionRepo,
	log *logrus.Logger,
) *DashboardService {
	return &DashboardService{
		teamRepo:     teamRepo,
		pulseRepo:    pulseRepo,
		responseRepo: responseRepo,
		employeeRepo: employeeRepo,
		questionRepo: questionRepo,
		log:          log,
	}
}

// Data builds the dashboard for one team owned by the manager
func (s *DashboardService) Data(ctx context.Context, teamID, managerID string) (*model.DashboardData, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil || team.ManagerID != managerID {
		return nil, ErrTeamNotFound
	}

	scores, err := s.pulseRepo.ListByTeam(ctx, teamID, dashboardHistoryLimit)
	if err != nil {
		return nil, err
	}

	data := &model.DashboardData{
		PulseHistory:   make([]model.PulsePoint, 0, len(scores)),
		RecentComments: []model.RecentComment{},
	}

	if len(scores) > 0 {
		current := scores[0].Score
		data.CurrentPulse = &current
		if len(scores) > 1 {
			data.Trend = round1(scores[0].Score - scores[1].Score)
		}
	}

	// ListByTeam returns newest first; the chart wants oldest first.
	for i := len(scores) - 1; i >= 0; i-- {
		data.PulseHistory = append(data.PulseHistory, model.PulsePoint{
			Date:          scores[i].WeekStarting,
			Score:         scores[i].Score,
			ResponseCount: scores[i].ResponseCount,
		})
	}

	employeeCount, err := s.employeeRepo.CountActive(ctx, teamID)
	if err != nil {
		return nil, err
	}
	data.TotalEmployees = employeeCount

	from := time.Now().AddDate(0, 0, -30)
	responses, err := s.responseRepo.ListByTeam(ctx, teamID, from, time.Time{})
	if err != nil {
		return nil, err
	}
	data.ResponseRate = EstimateParticipation(responses, employeeCount).ResponseRate

	questions, err := s.questionRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	commentQuestions := make(map[string]bool)
	for _, q := range questions {
		if q.Type == model.QuestionTypeComment {
			commentQuestions[q.ID] = true
		}
	}

	// Responses arrive newest first, so the first matches are the most recent.
	for _, r := range responses {
		if !commentQuestions[r.QuestionID] || utf8.RuneCountInString(r.Value) <= minDashboardCommentLength {
			continue
		}
		data.RecentComments = append(data.RecentComments, model.RecentComment{
			Text:        r.Value,
			SubmittedAt: r.SubmittedAt,
		})
		if len(data.RecentComments) == dashboardCommentLimit {
			break
		}
	}

	return data, nil
}
