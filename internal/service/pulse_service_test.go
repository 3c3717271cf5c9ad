package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scot00671234/wishwello/internal/model"
)

func weekOf(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC) // a Sunday
}

func newPulseService(responseRepo *stubResponseRepo, pulseRepo *stubPulseRepo, employees *stubEmployeeRepo) *PulseService {
	return NewPulseService(
		newStubTeamRepo(&model.Team{ID: "team-1", Name: "Platform", ManagerID: "mgr-1"}),
		responseRepo,
		employees,
		pulseRepo,
		newStubAlertCache(),
		testLogger(),
	)
}

func TestCalculateWeeklyPulse(t *testing.T) {
	weekStart := weekOf(t)
	inWeek := weekStart.Add(48 * time.Hour)

	responseRepo := &stubResponseRepo{
		responses: responsesFor("q1", inWeek,
			"8", "7", "9", "6", "8", // scoreable
			"yes", "great week overall", // ignored by the strict filter
		),
	}
	pulseRepo := &stubPulseRepo{}
	employees := &stubEmployeeRepo{employees: []*model.Employee{
		{Email: "a@corp.test", IsActive: true},
		{Email: "b@corp.test", IsActive: true},
		{Email: "c@corp.test", IsActive: false},
	}}

	svc := newPulseService(responseRepo, pulseRepo, employees)
	score, err := svc.CalculateWeeklyPulse(context.Background(), "team-1", weekStart)
	require.NoError(t, err)
	require.NotNil(t, score)

	assert.Equal(t, 7.6, score.Score)
	// 7 raw responses / 3 questions per submission, rounded up
	assert.Equal(t, 3, score.ResponseCount)
	assert.Equal(t, 2, score.TotalEmployees)
	assert.Equal(t, weekStart, score.WeekStarting)
	assert.Len(t, pulseRepo.created, 1)
}

func TestCalculateWeeklyPulseEmptyWeek(t *testing.T) {
	pulseRepo := &stubPulseRepo{}
	svc := newPulseService(&stubResponseRepo{}, pulseRepo, &stubEmployeeRepo{})

	score, err := svc.CalculateWeeklyPulse(context.Background(), "team-1", weekOf(t))
	require.NoError(t, err)
	assert.Nil(t, score)
	assert.Empty(t, pulseRepo.created)
}

func TestCalculateWeeklyPulseNoScoreableValues(t *testing.T) {
	weekStart := weekOf(t)
	responseRepo := &stubResponseRepo{
		responses: responsesFor("q1", weekStart.Add(time.Hour),
			"yes", "no", "0", "11", "felt pretty good"),
	}
	pulseRepo := &stubPulseRepo{}
	svc := newPulseService(responseRepo, pulseRepo, &stubEmployeeRepo{})

	score, err := svc.CalculateWeeklyPulse(context.Background(), "team-1", weekStart)
	require.NoError(t, err)
	assert.Nil(t, score)
	assert.Empty(t, pulseRepo.created)
}

func TestCalculateWeeklyPulseIgnoresOtherWeeks(t *testing.T) {
	weekStart := weekOf(t)
	responseRepo := &stubResponseRepo{
		responses: append(
			responsesFor("q1", weekStart.Add(time.Hour), "8", "8"),
			responsesFor("q1", weekStart.AddDate(0, 0, -1), "1", "1")...,
		),
	}
	pulseRepo := &stubPulseRepo{}
	svc := newPulseService(responseRepo, pulseRepo, &stubEmployeeRepo{})

	score, err := svc.CalculateWeeklyPulse(context.Background(), "team-1", weekStart)
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 8.0, score.Score)
	assert.Equal(t, 1, score.ResponseCount)
}

func TestAlertFiresOnDrop(t *testing.T) {
	weekStart := weekOf(t)
	responseRepo := &stubResponseRepo{
		responses: responsesFor("q1", weekStart.Add(time.Hour), "7", "6", "6", "7"),
	}
	pulseRepo := &stubPulseRepo{
		scores: []*model.PulseScore{
			{TeamID: "team-1", Score: 9.0, WeekStarting: weekStart.AddDate(0, 0, -7)},
		},
	}
	sink := &recordingAlertSink{}

	svc := newPulseService(responseRepo, pulseRepo, &stubEmployeeRepo{})
	svc.AddAlertSink(sink)

	score, err := svc.CalculateWeeklyPulse(context.Background(), "team-1", weekStart)
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 6.5, score.Score)

	require.Len(t, sink.alerts, 1)
	assert.Equal(t, "team-1", sink.alerts[0].TeamID)
	assert.Equal(t, 6.5, sink.alerts[0].CurrentScore)
	assert.Equal(t, 2.5, sink.alerts[0].Drop)
}

func TestAlertThresholdIsStrict(t *testing.T) {
	weekStart := weekOf(t)
	responseRepo := &stubResponseRepo{
		responses: responsesFor("q1", weekStart.Add(time.Hour), "7"),
	}
	pulseRepo := &stubPulseRepo{
		scores: []*model.PulseScore{
			{TeamID: "team-1", Score: 9.0, WeekStarting: weekStart.AddDate(0, 0, -7)},
		},
	}
	sink := &recordingAlertSink{}

	svc := newPulseService(responseRepo, pulseRepo, &stubEmployeeRepo{})
	svc.AddAlertSink(sink)

	// 9.0 -> 7.0 is a drop of exactly 2.0, which does not alert
	_, err := svc.CalculateWeeklyPulse(context.Background(), "team-1", weekStart)
	require.NoError(t, err)
	assert.Empty(t, sink.alerts)
}

func TestAlertDeDuplicated(t *testing.T) {
	weekStart := weekOf(t)
	responseRepo := &stubResponseRepo{
		responses: responsesFor("q1", weekStart.Add(time.Hour), "6"),
	}
	pulseRepo := &stubPulseRepo{
		scores: []*model.PulseScore{
			{TeamID: "team-1", Score: 9.0, WeekStarting: weekStart.AddDate(0, 0, -7)},
		},
	}
	sink := &recordingAlertSink{}

	svc := newPulseService(responseRepo, pulseRepo, &stubEmployeeRepo{})
	svc.AddAlertSink(sink)

	_, err := svc.CalculateWeeklyPulse(context.Background(), "team-1", weekStart)
	require.NoError(t, err)
	require.Len(t, sink.alerts, 1)

	// Re-running the same week must not notify again
	svc.checkForAlert(context.Background(), "team-1")
	assert.Len(t, sink.alerts, 1)
}

func TestEvaluatePulseTrend(t *testing.T) {
	current := &model.PulseScore{TeamID: "team-1", Score: 5.5}
	previous := &model.PulseScore{TeamID: "team-1", Score: 8.0}

	alert := EvaluatePulseTrend(current, previous)
	require.NotNil(t, alert)
	assert.Equal(t, 5.5, alert.CurrentScore)
	assert.Equal(t, 2.5, alert.Drop)

	assert.Nil(t, EvaluatePulseTrend(previous, current), "improvements never alert")
	assert.Nil(t, EvaluatePulseTrend(nil, previous))
	assert.Nil(t, EvaluatePulseTrend(current, nil))
}

func TestCurrentWeekStart(t *testing.T) {
	wednesday := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), CurrentWeekStart(wednesday))

	sunday := time.Date(2026, 8, 23, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), CurrentWeekStart(sunday))
}

func TestRunWeeklyIsolatesTeams(t *testing.T) {
	weekStart := CurrentWeekStart(time.Now())
	responseRepo := &stubResponseRepo{
		responses: responsesFor("q1", weekStart.Add(time.Hour), "8", "9"),
	}
	pulseRepo := &stubPulseRepo{}

	svc := NewPulseService(
		newStubTeamRepo(
			&model.Team{ID: "team-1", Name: "Platform", ManagerID: "mgr-1"},
			&model.Team{ID: "team-2", Name: "Mobile", ManagerID: "mgr-1"},
		),
		responseRepo,
		&stubEmployeeRepo{},
		pulseRepo,
		newStubAlertCache(),
		testLogger(),
	)

	require.NoError(t, svc.RunWeekly(context.Background()))
	// The stub serves the same responses to both teams
	assert.Len(t, pulseRepo.created, 2)
}
