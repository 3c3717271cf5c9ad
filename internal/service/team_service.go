package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/scot00671234/wishwello/internal/cache"
	"github.com/scot00671234/wishwello/internal/model"
	"github.com/scot00671234/wishwello/internal/repository"
)

var (
	ErrTeamNameRequired    = errors.New("team name is required")
	ErrInvalidQuestionType = errors.New("invalid question type")
	ErrInvalidSchedule     = errors.New("invalid check-in schedule")
)

var validFrequencies = map[string]bool{
	"weekly":   true,
	"biweekly": true,
	"monthly":  true,
}

// TeamInput carries the manager-editable team fields
type TeamInput struct {
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
}

// QuestionInput is one entry of a catalog replacement
type QuestionInput struct {
	Title      string             `json:"title"`
	Type       model.QuestionType `json:"type"`
	IsRequired bool               `json:"isRequired"`
}

// ScheduleInput carries the check-in schedule fields
type ScheduleInput struct {
	Frequency string `json:"frequency"`
	DayOfWeek int    `json:"dayOfWeek"`
	Hour      int    `json:"hour"`
	IsActive  bool   `json:"isActive"`
}

// TeamService manages teams and their rosters, question catalogs and
// check-in schedules. Every mutation is scoped to the owning manager.
type TeamService struct {
	teamRepo       repository.TeamRepo
	employeeRepo   repository.EmployeeRepo
	questionRepo   repository.QuestionRepo
	scheduleRepo   repository.ScheduleRepo
	analyticsCache cache.AnalyticsCache
	log            *logrus.Logger
}

// NewTeamService creates a new team service
func NewTeamService(
	teamRepo repository.TeamRepo,
	employeeRepo repository.EmployeeRepo,
	questionRepo repository.QuestionRepo,
	scheduleRepo repository.ScheduleRepo,
	analyticsCache cache.AnalyticsCache,
	log *logrus.Logger,
) *TeamService {
	return &TeamService{
		teamRepo:       teamRepo,
		employeeRepo:   employeeRepo,
		questionRepo:   questionRepo,
		scheduleRepo:   scheduleRepo,
		analyticsCache: analyticsCache,
		log:            log,
	}
}

// Create registers a new team owned by the manager
func (s *TeamService) Create(ctx context.Context, managerID string, in TeamInput) (*model.Team, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team := &model.Team{
		Name:        name,
		CompanyName: strings.TrimSpace(in.CompanyName),
		ManagerID:   managerID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// GetForManager loads a team and enforces ownership
func (s *TeamService) GetForManager(ctx context.Context, teamID, managerID string) (*model.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil || team.ManagerID != managerID {
		return nil, ErrTeamNotFound
	}
	return team, nil
}

// ListByManager returns all teams owned by the manager
func (s *TeamService) ListByManager(ctx context.Context, managerID string) ([]*model.Team, error) {
	return s.teamRepo.ListByManager(ctx, managerID)
}

// Update renames a team
func (s *TeamService) Update(ctx context.Context, teamID, managerID string, in TeamInput) (*model.Team, error) {
	team, err := s.GetForManager(ctx, teamID, managerID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	team.Name = name
	team.CompanyName = strings.TrimSpace(in.CompanyName)

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// Delete removes a team. Responses and pulse history are kept; they are
// unreachable without the team but stay available for export.
func (s *TeamService) Delete(ctx context.Context, teamID, managerID string) error {
	if _, err := s.GetForManager(ctx, teamID, managerID); err != nil {
		return err
	}
	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return err
	}
	return s.analyticsCache.Invalidate(ctx, teamID)
}

// ReplaceEmployees swaps the team roster for the given email list.
// Blank and duplicate addresses are dropped.
func (s *TeamService) ReplaceEmployees(ctx context.Context, teamID, managerID string, emails []string) ([]*model.Employee, error) {
	if _, err := s.GetForManager(ctx, teamID, managerID); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	employees := make([]*model.Employee, 0, len(emails))
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		employees = append(employees, &model.Employee{
			TeamID:   teamID,
			Email:    email,
			IsActive: true,
		})
	}

	return s.employeeRepo.ReplaceForTeam(ctx, teamID, employees)
}

// ListEmployees returns the current roster
func (s *TeamService) ListEmployees(ctx context.Context, teamID, managerID string) ([]*model.Employee, error) {
	if _, err := s.GetForManager(ctx, teamID, managerID); err != nil {
		return nil, err
	}
	return s.employeeRepo.ListByTeam(ctx, teamID)
}

// ReplaceQuestions swaps the question catalog. Order follows the input
// order. Responses to removed questions stay stored but drop out of the
// per-question analytics.
func (s *TeamService) ReplaceQuestions(ctx context.Context, teamID, managerID string, inputs []QuestionInput) ([]*model.Question, error) {
	if _, err := s.GetForManager(ctx, teamID, managerID); err != nil {
		return nil, err
	}

	questions := make([]*model.Question, 0, len(inputs))
	for _, in := range inputs {
		title := strings.TrimSpace(in.Title)
		if title == "" {
			continue
		}
		if !in.Type.Valid() {
			return nil, ErrInvalidQuestionType
		}
		questions = append(questions, &model.Question{
			TeamID:     teamID,
			Title:      title,
			Type:       in.Type,
			IsRequired: in.IsRequired,
		})
	}

	replaced, err := s.questionRepo.ReplaceForTeam(ctx, teamID, questions)
	if err != nil {
		return nil, err
	}
	if err := s.analyticsCache.Invalidate(ctx, teamID); err != nil {
		s.log.WithError(err).Warn("failed to invalidate analytics cache")
	}
	return replaced, nil
}

// ListQuestions returns the current catalog in display order
func (s *TeamService) ListQuestions(ctx context.Context, teamID, managerID string) ([]*model.Question, error) {
	if _, err := s.GetForManager(ctx, teamID, managerID); err != nil {
		return nil, err
	}
	return s.questionRepo.ListByTeam(ctx, teamID)
}

// SaveSchedule creates or updates the team's single check-in schedule
func (s *TeamService) SaveSchedule(ctx context.Context, teamID, managerID string, in ScheduleInput) (*model.CheckinSchedule, error) {
	if _, err := s.GetForManager(ctx, teamID, managerID); err != nil {
		return nil, err
	}

	if !validFrequencies[in.Frequency] || in.DayOfWeek < 1 || in.DayOfWeek > 7 || in.Hour < 0 || in.Hour > 23 {
		return nil, ErrInvalidSchedule
	}

	return s.scheduleRepo.CreateOrUpdate(ctx, &model.CheckinSchedule{
		TeamID:    teamID,
		Frequency: in.Frequency,
		DayOfWeek: in.DayOfWeek,
		Hour:      in.Hour,
		IsActive:  in.IsActive,
	})
}

// GetSchedule returns the team's schedule, nil when none is configured
func (s *TeamService) GetSchedule(ctx context.Context, teamID, managerID string) (*model.CheckinSchedule, error) {
	if _, err := s.GetForManager(ctx, teamID, managerID); err != nil {
		return nil, err
	}
	return s.scheduleRepo.GetByTeam(ctx, teamID)
}
