package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/scot00671234/wishwello/internal/cache"
	"github.com/scot00671234/wishwello/internal/model"
	"github.com/scot00671234/wishwello/internal/repository"
)

// EstimatedQuestionsPerSubmission is the fixed divisor used to estimate how
// many people answered from the raw response volume. Responses are
// anonymous, so the true count is unknowable; this assumes a typical survey
// of about three questions and does not adapt to the team's actual catalog.
const EstimatedQuestionsPerSubmission = 3

// weeklyPulseConcurrency bounds the per-team fan-out of the weekly job
const weeklyPulseConcurrency = 8

// PulseService computes and persists the weekly pulse score per team and
// raises alerts on significant week-over-week drops
type PulseService struct {
	teamRepo     repository.TeamRepo
	responseRepo repository.ResponseRepo
	employeeRepo repository.EmployeeRepo
	pulseRepo    repository.PulseScoreRepo
	alertCache   cache.AlertCache
	sinks        []AlertSink
	log          *logrus.Logger
}

// NewPulseService creates a new pulse service
func NewPulseService(
	teamRepo repository.TeamRepo,
	responseRepo repository.ResponseRepo,
	employeeRepo repository.EmployeeRepo,
	pulseRepo repository.PulseScoreRepo,
	alertCache cache.AlertCache,
	log *logrus.Logger,
) *PulseService {
	return &PulseService{
		teamRepo:     teamRepo,
		responseRepo: responseRepo,
		employeeRepo: employeeRepo,
		pulseRepo:    pulseRepo,
		alertCache:   alertCache,
		log:          log,
	}
}

// AddAlertSink registers a destination for pulse alerts
func (s *PulseService) AddAlertSink(sink AlertSink) {
	s.sinks = append(s.sinks, sink)
}

// CurrentWeekStart returns the most recent Sunday 00:00 in now's location
func CurrentWeekStart(now time.Time) time.Time {
	d := now.AddDate(0, 0, -int(now.Weekday()))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
}

// CalculateWeeklyPulse computes and persists one team's score for the week
// beginning at weekStart. Returns nil without persisting anything when the
// week has no responses, or none that pass the 1-10 bound.
func (s *PulseService) CalculateWeeklyPulse(ctx context.Context, teamID string, weekStart time.Time) (*model.PulseScore, error) {
	responses, err := s.responseRepo.ListForWeek(ctx, teamID, weekStart)
	if err != nil {
		return nil, err
	}
	if len(responses) == 0 {
		return nil, nil
	}

	// Strict bound check: the headline number must not be skewed by
	// malformed or out-of-range values. The analytics view is lenient
	// instead.
	var values []int
	for _, r := range responses {
		v, err := strconv.Atoi(strings.TrimSpace(r.Value))
		if err != nil || v < 1 || v > 10 {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, nil
	}

	sum := 0
	for _, v := range values {
		sum += v
	}
	score := round1(float64(sum) / float64(len(values)))

	employeeCount, err := s.employeeRepo.CountActive(ctx, teamID)
	if err != nil {
		return nil, err
	}

	responseCount := int(math.Ceil(float64(len(responses)) / float64(EstimatedQuestionsPerSubmission)))

	created, err := s.pulseRepo.Create(ctx, &model.PulseScore{
		TeamID:         teamID,
		Score:          score,
		ResponseCount:  responseCount,
		TotalEmployees: employeeCount,
		WeekStarting:   weekStart,
	})
	if err != nil {
		return nil, err
	}

	s.checkForAlert(ctx, teamID)
	return created, nil
}

// RunWeekly fans out over all teams. Each team is processed independently;
// a failing team is logged and never blocks its siblings.
func (s *PulseService) RunWeekly(ctx context.Context) error {
	teams, err := s.teamRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	weekStart := CurrentWeekStart(time.Now())

	g := new(errgroup.Group)
	g.SetLimit(weeklyPulseConcurrency)
	for _, team := range teams {
		team := team
		g.Go(func() error {
			score, err := s.CalculateWeeklyPulse(ctx, team.ID, weekStart)
			if err != nil {
				s.log.WithError(err).WithField("teamId", team.ID).Error("weekly pulse calculation failed")
				return nil
			}
			if score == nil {
				s.log.WithField("teamId", team.ID).Debug("no scoreable responses this week, skipping")
				return nil
			}
			s.log.WithFields(logrus.Fields{
				"teamId": team.ID,
				"score":  score.Score,
			}).Info("weekly pulse score calculated")
			return nil
		})
	}
	return g.Wait()
}

func (s *PulseService) checkForAlert(ctx context.Context, teamID string) {
	scores, err := s.pulseRepo.ListByTeam(ctx, teamID, 2)
	if err != nil {
		s.log.WithError(err).WithField("teamId", teamID).Warn("failed to load pulse history for alert check")
		return
	}
	if len(scores) < 2 {
		return
	}

	alert := EvaluatePulseTrend(scores[0], scores[1])
	if alert == nil {
		return
	}

	if s.alertCache != nil {
		first, err := s.alertCache.Claim(ctx, teamID, scores[0].WeekStarting)
		if err != nil {
			s.log.WithError(err).Warn("alert de-duplication unavailable, notifying anyway")
		} else if !first {
			return
		}
	}

	s.log.WithFields(logrus.Fields{
		"teamId": alert.TeamID,
		"score":  alert.CurrentScore,
		"drop":   alert.Drop,
	}).Warn("pulse score drop detected")

	for _, sink := range s.sinks {
		if err := sink.Notify(ctx, *alert); err != nil {
			s.log.WithError(err).WithField("teamId", teamID).Error("alert delivery failed")
		}
	}
}
