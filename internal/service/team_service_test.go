package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scot00671234/wishwello/internal/model"
)

func newTeamService(teamRepo *stubTeamRepo) (*TeamService, *stubAnalyticsCache) {
	analyticsCache := &stubAnalyticsCache{}
	svc := NewTeamService(
		teamRepo,
		&stubEmployeeRepo{},
		&stubQuestionRepo{},
		&stubScheduleRepo{},
		analyticsCache,
		testLogger(),
	)
	return svc, analyticsCache
}

func TestTeamOwnershipEnforced(t *testing.T) {
	teamRepo := newStubTeamRepo(&model.Team{ID: "team-1", Name: "Platform", ManagerID: "mgr-1"})
	svc, _ := newTeamService(teamRepo)

	_, err := svc.GetForManager(context.Background(), "team-1", "mgr-2")
	assert.ErrorIs(t, err, ErrTeamNotFound)

	team, err := svc.GetForManager(context.Background(), "team-1", "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, "Platform", team.Name)
}

func TestCreateTeamRequiresName(t *testing.T) {
	svc, _ := newTeamService(newStubTeamRepo())

	_, err := svc.Create(context.Background(), "mgr-1", TeamInput{Name: "   "})
	assert.ErrorIs(t, err, ErrTeamNameRequired)

	team, err := svc.Create(context.Background(), "mgr-1", TeamInput{Name: " Platform ", CompanyName: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Platform", team.Name)
	assert.Equal(t, "mgr-1", team.ManagerID)
}

func TestReplaceEmployeesNormalizes(t *testing.T) {
	teamRepo := newStubTeamRepo(&model.Team{ID: "team-1", ManagerID: "mgr-1"})
	svc, _ := newTeamService(teamRepo)

	employees, err := svc.ReplaceEmployees(context.Background(), "team-1", "mgr-1", []string{
		" A@Corp.Test ", "a@corp.test", "", "b@corp.test",
	})
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "a@corp.test", employees[0].Email)
	assert.Equal(t, "b@corp.test", employees[1].Email)
	assert.True(t, employees[0].IsActive)
}

func TestReplaceQuestionsValidatesType(t *testing.T) {
	teamRepo := newStubTeamRepo(&model.Team{ID: "team-1", ManagerID: "mgr-1"})
	svc, analyticsCache := newTeamService(teamRepo)

	_, err := svc.ReplaceQuestions(context.Background(), "team-1", "mgr-1", []QuestionInput{
		{Title: "How was your week?", Type: "rating"},
	})
	assert.ErrorIs(t, err, ErrInvalidQuestionType)

	questions, err := svc.ReplaceQuestions(context.Background(), "team-1", "mgr-1", []QuestionInput{
		{Title: "How was your week?", Type: model.QuestionTypeMetric},
		{Title: "   ", Type: model.QuestionTypeComment}, // dropped
		{Title: "Anything else?", Type: model.QuestionTypeComment},
	})
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, 0, questions[0].Order)
	assert.Equal(t, 1, questions[1].Order)
	assert.Equal(t, 1, analyticsCache.invalidated)
}

func TestSaveScheduleValidates(t *testing.T) {
	teamRepo := newStubTeamRepo(&model.Team{ID: "team-1", ManagerID: "mgr-1"})
	svc, _ := newTeamService(teamRepo)

	cases := []ScheduleInput{
		{Frequency: "daily", DayOfWeek: 3, Hour: 9},
		{Frequency: "weekly", DayOfWeek: 0, Hour: 9},
		{Frequency: "weekly", DayOfWeek: 8, Hour: 9},
		{Frequency: "weekly", DayOfWeek: 3, Hour: 24},
	}
	for _, in := range cases {
		_, err := svc.SaveSchedule(context.Background(), "team-1", "mgr-1", in)
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	}

	schedule, err := svc.SaveSchedule(context.Background(), "team-1", "mgr-1", ScheduleInput{
		Frequency: "weekly", DayOfWeek: 5, Hour: 9, IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "team-1", schedule.TeamID)
	assert.True(t, schedule.IsActive)
}
