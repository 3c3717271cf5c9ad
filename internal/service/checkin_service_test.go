package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scot00671234/wishwello/internal/model"
)

func TestScheduleDue(t *testing.T) {
	// Wednesday 2026-08-26 at 09:xx
	now := time.Date(2026, 8, 26, 9, 15, 0, 0, time.UTC)

	wednesday := &model.CheckinSchedule{DayOfWeek: 3, Hour: 9}
	assert.True(t, scheduleDue(wednesday, now))

	assert.False(t, scheduleDue(&model.CheckinSchedule{DayOfWeek: 4, Hour: 9}, now), "wrong day")
	assert.False(t, scheduleDue(&model.CheckinSchedule{DayOfWeek: 3, Hour: 10}, now), "wrong hour")

	// Day 7 means Sunday, which time.Weekday counts as 0
	sundayNoon := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	assert.True(t, scheduleDue(&model.CheckinSchedule{DayOfWeek: 7, Hour: 12}, sundayNoon))

	alreadySent := now.Add(-time.Hour)
	assert.False(t, scheduleDue(&model.CheckinSchedule{DayOfWeek: 3, Hour: 9, LastSentAt: &alreadySent}, now),
		"at most one dispatch per day")

	yesterday := now.AddDate(0, 0, -1)
	assert.True(t, scheduleDue(&model.CheckinSchedule{DayOfWeek: 3, Hour: 9, LastSentAt: &yesterday}, now))
}

func TestRunHourlySendsToActiveEmployees(t *testing.T) {
	now := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)

	scheduleRepo := &stubScheduleRepo{schedules: []*model.CheckinSchedule{
		{ID: "sched-1", TeamID: "team-1", Frequency: "weekly", DayOfWeek: 3, Hour: 9, IsActive: true},
		{ID: "sched-2", TeamID: "team-2", Frequency: "weekly", DayOfWeek: 5, Hour: 9, IsActive: true},
	}}
	employeeRepo := &stubEmployeeRepo{employees: []*model.Employee{
		{TeamID: "team-1", Email: "a@corp.test", IsActive: true},
		{TeamID: "team-1", Email: "b@corp.test", IsActive: true},
		{TeamID: "team-1", Email: "left@corp.test", IsActive: false},
	}}
	mailer := &recordingMailer{}

	svc := NewCheckinService(
		scheduleRepo,
		newStubTeamRepo(&model.Team{ID: "team-1", Name: "Platform", ManagerID: "mgr-1"}),
		employeeRepo,
		mailer,
		testLogger(),
	)

	require.NoError(t, svc.RunHourly(context.Background(), now))

	assert.Equal(t, []string{"a@corp.test", "b@corp.test"}, mailer.invites)
	assert.Equal(t, []string{"sched-1"}, scheduleRepo.marked)
}

func TestRunHourlySkipsMissingTeam(t *testing.T) {
	now := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)

	scheduleRepo := &stubScheduleRepo{schedules: []*model.CheckinSchedule{
		{ID: "sched-1", TeamID: "gone", Frequency: "weekly", DayOfWeek: 3, Hour: 9, IsActive: true},
	}}
	mailer := &recordingMailer{}

	svc := NewCheckinService(scheduleRepo, newStubTeamRepo(), &stubEmployeeRepo{}, mailer, testLogger())

	require.NoError(t, svc.RunHourly(context.Background(), now))
	assert.Empty(t, mailer.invites)
	assert.Empty(t, scheduleRepo.marked)
}
