package service

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/scot00671234/wishwello/internal/model"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// In-memory stand-ins for the Mongo repositories and Redis caches so the
// services can be exercised without infrastructure.

type stubTeamRepo struct {
	teams map[string]*model.Team
}

func newStubTeamRepo(teams ...*model.Team) *stubTeamRepo {
	r := &stubTeamRepo{teams: make(map[string]*model.Team)}
	for _, t := range teams {
		r.teams[t.ID] = t
	}
	return r
}

func (r *stubTeamRepo) Create(ctx context.Context, team *model.Team) error {
	if team.ID == "" {
		team.ID = "team-" + strconv.Itoa(len(r.teams)+1)
	}
	team.CreatedAt = time.Now()
	r.teams[team.ID] = team
	return nil
}

func (r *stubTeamRepo) GetByID(ctx context.Context, id string) (*model.Team, error) {
	return r.teams[id], nil
}

func (r *stubTeamRepo) ListByManager(ctx context.Context, managerID string) ([]*model.Team, error) {
	var teams []*model.Team
	for _, t := range r.teams {
		if t.ManagerID == managerID {
			teams = append(teams, t)
		}
	}
	return teams, nil
}

func (r *stubTeamRepo) ListAll(ctx context.Context) ([]*model.Team, error) {
	var teams []*model.Team
	for _, t := range r.teams {
		teams = append(teams, t)
	}
	return teams, nil
}

func (r *stubTeamRepo) Update(ctx context.Context, team *model.Team) error {
	r.teams[team.ID] = team
	return nil
}

func (r *stubTeamRepo) Delete(ctx context.Context, id string) error {
	delete(r.teams, id)
	return nil
}

type stubEmployeeRepo struct {
	employees []*model.Employee
}

func (r *stubEmployeeRepo) ReplaceForTeam(ctx context.Context, teamID string, employees []*model.Employee) ([]*model.Employee, error) {
	r.employees = employees
	return employees, nil
}

func (r *stubEmployeeRepo) ListByTeam(ctx context.Context, teamID string) ([]*model.Employee, error) {
	return r.employees, nil
}

func (r *stubEmployeeRepo) CountActive(ctx context.Context, teamID string) (int, error) {
	count := 0
	for _, e := range r.employees {
		if e.IsActive {
			count++
		}
	}
	return count, nil
}

type stubQuestionRepo struct {
	questions []*model.Question
}

func (r *stubQuestionRepo) ReplaceForTeam(ctx context.Context, teamID string, questions []*model.Question) ([]*model.Question, error) {
	for i, q := range questions {
		if q.ID == "" {
			q.ID = "q-" + strconv.Itoa(i+1)
		}
		q.Order = i
	}
	r.questions = questions
	return questions, nil
}

func (r *stubQuestionRepo) ListByTeam(ctx context.Context, teamID string) ([]*model.Question, error) {
	return r.questions, nil
}

type stubResponseRepo struct {
	responses []*model.Response
	created   []*model.Response
}

func (r *stubResponseRepo) Create(ctx context.Context, response *model.Response) error {
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now()
	}
	r.created = append(r.created, response)
	r.responses = append(r.responses, response)
	return nil
}

func (r *stubResponseRepo) ListByTeam(ctx context.Context, teamID string, from, to time.Time) ([]*model.Response, error) {
	return r.responses, nil
}

func (r *stubResponseRepo) ListForWeek(ctx context.Context, teamID string, weekStart time.Time) ([]*model.Response, error) {
	end := weekStart.AddDate(0, 0, 7)
	var out []*model.Response
	for _, resp := range r.responses {
		if !resp.SubmittedAt.Before(weekStart) && resp.SubmittedAt.Before(end) {
			out = append(out, resp)
		}
	}
	return out, nil
}

type stubPulseRepo struct {
	scores  []*model.PulseScore
	created []*model.PulseScore
}

func (r *stubPulseRepo) Create(ctx context.Context, score *model.PulseScore) (*model.PulseScore, error) {
	score.CreatedAt = time.Now()
	r.created = append(r.created, score)
	// newest first, like the Mongo implementation's ListByTeam sort
	r.scores = append([]*model.PulseScore{score}, r.scores...)
	return score, nil
}

func (r *stubPulseRepo) ListByTeam(ctx context.Context, teamID string, limit int) ([]*model.PulseScore, error) {
	if limit > len(r.scores) {
		limit = len(r.scores)
	}
	return r.scores[:limit], nil
}

func (r *stubPulseRepo) EnsureIndexes(ctx context.Context) error {
	return nil
}

type stubScheduleRepo struct {
	schedules []*model.CheckinSchedule
	marked    []string
}

func (r *stubScheduleRepo) CreateOrUpdate(ctx context.Context, schedule *model.CheckinSchedule) (*model.CheckinSchedule, error) {
	if schedule.ID == "" {
		schedule.ID = "sched-" + strconv.Itoa(len(r.schedules)+1)
	}
	r.schedules = append(r.schedules, schedule)
	return schedule, nil
}

func (r *stubScheduleRepo) GetByTeam(ctx context.Context, teamID string) (*model.CheckinSchedule, error) {
	for _, s := range r.schedules {
		if s.TeamID == teamID {
			return s, nil
		}
	}
	return nil, nil
}

func (r *stubScheduleRepo) ListActive(ctx context.Context) ([]*model.CheckinSchedule, error) {
	var out []*model.CheckinSchedule
	for _, s := range r.schedules {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubScheduleRepo) MarkSent(ctx context.Context, id string, at time.Time) error {
	r.marked = append(r.marked, id)
	for _, s := range r.schedules {
		if s.ID == id {
			sent := at
			s.LastSentAt = &sent
		}
	}
	return nil
}

type stubManagerRepo struct {
	managers map[string]*model.Manager
}

func newStubManagerRepo() *stubManagerRepo {
	return &stubManagerRepo{managers: make(map[string]*model.Manager)}
}

func (r *stubManagerRepo) Create(ctx context.Context, manager *model.Manager) error {
	if manager.ID == "" {
		manager.ID = "mgr-" + strconv.Itoa(len(r.managers)+1)
	}
	manager.CreatedAt = time.Now()
	r.managers[manager.ID] = manager
	return nil
}

func (r *stubManagerRepo) GetByID(ctx context.Context, id string) (*model.Manager, error) {
	return r.managers[id], nil
}

func (r *stubManagerRepo) GetByEmail(ctx context.Context, email string) (*model.Manager, error) {
	for _, m := range r.managers {
		if m.Email == email {
			return m, nil
		}
	}
	return nil, nil
}

type stubAnalyticsCache struct {
	report      *model.AnalyticsReport
	invalidated int
}

func (c *stubAnalyticsCache) GetReport(ctx context.Context, teamID string) (*model.AnalyticsReport, error) {
	return c.report, nil
}

func (c *stubAnalyticsCache) SetReport(ctx context.Context, teamID string, report *model.AnalyticsReport) error {
	c.report = report
	return nil
}

func (c *stubAnalyticsCache) Invalidate(ctx context.Context, teamID string) error {
	c.report = nil
	c.invalidated++
	return nil
}

type stubAlertCache struct {
	claimed map[string]bool
}

func newStubAlertCache() *stubAlertCache {
	return &stubAlertCache{claimed: make(map[string]bool)}
}

func (c *stubAlertCache) Claim(ctx context.Context, teamID string, weekStarting time.Time) (bool, error) {
	key := teamID + weekStarting.Format("2006-01-02")
	if c.claimed[key] {
		return false, nil
	}
	c.claimed[key] = true
	return true, nil
}

type recordingAlertSink struct {
	alerts []model.PulseAlert
}

func (s *recordingAlertSink) Notify(ctx context.Context, alert model.PulseAlert) error {
	s.alerts = append(s.alerts, alert)
	return nil
}

type recordingMailer struct {
	invites []string
}

func (m *recordingMailer) SendCheckinInvite(ctx context.Context, to string, team *model.Team) error {
	m.invites = append(m.invites, to)
	return nil
}
