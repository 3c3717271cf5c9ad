package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scot00671234/wishwello/internal/model"
)

func TestDashboardData(t *testing.T) {
	week2 := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	week1 := week2.AddDate(0, 0, -7)

	pulseRepo := &stubPulseRepo{scores: []*model.PulseScore{
		{TeamID: "team-1", Score: 6.8, ResponseCount: 4, WeekStarting: week2},
		{TeamID: "team-1", Score: 7.4, ResponseCount: 5, WeekStarting: week1},
	}}

	base := time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)
	responseRepo := &stubResponseRepo{responses: []*model.Response{
		{QuestionID: "q2", Value: "The new onboarding flow works well", SubmittedAt: base.Add(-time.Hour)},
		{QuestionID: "q2", Value: "short", SubmittedAt: base.Add(-2 * time.Hour)},
		{QuestionID: "q1", Value: "8", SubmittedAt: base.Add(-3 * time.Hour)},
		// Seven characters, twenty-one bytes: below the threshold
		{QuestionID: "q2", Value: "お疲れ様でした", SubmittedAt: base.Add(-4 * time.Hour)},
		{QuestionID: "q2", Value: "Sprint planning took too long this week", SubmittedAt: base.Add(-26 * time.Hour)},
	}}

	svc := NewDashboardService(
		newStubTeamRepo(&model.Team{ID: "team-1", Name: "Platform", ManagerID: "mgr-1"}),
		pulseRepo,
		responseRepo,
		&stubEmployeeRepo{employees: []*model.Employee{
			{Email: "a@corp.test", IsActive: true},
			{Email: "b@corp.test", IsActive: true},
			{Email: "c@corp.test", IsActive: true},
			{Email: "d@corp.test", IsActive: true},
		}},
		&stubQuestionRepo{questions: []*model.Question{
			{ID: "q1", Title: "How was your week?", Type: model.QuestionTypeMetric},
			{ID: "q2", Title: "Anything else?", Type: model.QuestionTypeComment},
		}},
		testLogger(),
	)

	data, err := svc.Data(context.Background(), "team-1", "mgr-1")
	require.NoError(t, err)

	require.NotNil(t, data.CurrentPulse)
	assert.Equal(t, 6.8, *data.CurrentPulse)
	assert.Equal(t, -0.6, data.Trend)
	assert.Equal(t, 4, data.TotalEmployees)

	// Two distinct submission days out of four employees
	assert.Equal(t, 50, data.ResponseRate)

	require.Len(t, data.PulseHistory, 2)
	assert.Equal(t, week1, data.PulseHistory[0].Date, "history is oldest first")
	assert.Equal(t, week2, data.PulseHistory[1].Date)

	// Only substantive comment-question answers, newest first
	require.Len(t, data.RecentComments, 2)
	assert.Equal(t, "The new onboarding flow works well", data.RecentComments[0].Text)
	assert.Equal(t, "Sprint planning took too long this week", data.RecentComments[1].Text)
}

func TestDashboardDataEmptyTeam(t *testing.T) {
	svc := NewDashboardService(
		newStubTeamRepo(&model.Team{ID: "team-1", Name: "Platform", ManagerID: "mgr-1"}),
		&stubPulseRepo{},
		&stubResponseRepo{},
		&stubEmployeeRepo{},
		&stubQuestionRepo{},
		testLogger(),
	)

	data, err := svc.Data(context.Background(), "team-1", "mgr-1")
	require.NoError(t, err)

	assert.Nil(t, data.CurrentPulse)
	assert.Zero(t, data.Trend)
	assert.Equal(t, 0, data.ResponseRate)
	assert.Empty(t, data.PulseHistory)
	assert.Empty(t, data.RecentComments)
}

func TestDashboardDataOwnership(t *testing.T) {
	svc := NewDashboardService(
		newStubTeamRepo(&model.Team{ID: "team-1", Name: "Platform", ManagerID: "mgr-1"}),
		&stubPulseRepo{},
		&stubResponseRepo{},
		&stubEmployeeRepo{},
		&stubQuestionRepo{},
		testLogger(),
	)

	_, err := svc.Data(context.Background(), "team-1", "mgr-2")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
