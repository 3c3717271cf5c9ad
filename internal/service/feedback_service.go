package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/scot00671234/wishwello/internal/cache"
	"github.com/scot00671234/wishwello/internal/model"
	"github.com/scot00671234/wishwello/internal/repository"
)

var ErrEmptySubmission = errors.New("submission contains no answers")

// SubmittedAnswer is one answer of an anonymous survey submission
type SubmittedAnswer struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

// FeedbackService serves the public survey form and ingests anonymous
// submissions. No respondent identity is ever read or stored.
type FeedbackService struct {
	teamRepo       repository.TeamRepo
	questionRepo   repository.QuestionRepo
	responseRepo   repository.ResponseRepo
	analyticsCache cache.AnalyticsCache
	broadcaster    Broadcaster
	log            *logrus.Logger
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(
	teamRepo repository.TeamRepo,
	questionRepo repository.QuestionRepo,
	responseRepo repository.ResponseRepo,
	analyticsCache cache.AnalyticsCache,
	log *logrus.Logger,
) *FeedbackService {
	return &FeedbackService{
		teamRepo:       teamRepo,
		questionRepo:   questionRepo,
		responseRepo:   responseRepo,
		analyticsCache: analyticsCache,
		log:            log,
	}
}

// SetBroadcaster wires the live dashboard hub, done after construction to
// avoid an import cycle
func (s *FeedbackService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// GetForm returns what the public survey page needs: the team and its
// question catalog in display order
func (s *FeedbackService) GetForm(ctx context.Context, teamID string) (*model.Team, []*model.Question, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, nil, err
	}
	if team == nil {
		return nil, nil, ErrTeamNotFound
	}
	questions, err := s.questionRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, nil, err
	}
	return team, questions, nil
}

// Submit stores one anonymous submission as individual per-question
// responses. Answers for questions no longer in the catalog, and blank
// answers, are dropped silently.
func (s *FeedbackService) Submit(ctx context.Context, teamID string, answers []SubmittedAnswer) (int, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return 0, err
	}
	if team == nil {
		return 0, ErrTeamNotFound
	}

	questions, err := s.questionRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return 0, err
	}
	catalog := make(map[string]bool, len(questions))
	for _, q := range questions {
		catalog[q.ID] = true
	}

	now := time.Now()
	checkinDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stored := 0
	for _, a := range answers {
		value := strings.TrimSpace(a.Value)
		if value == "" || !catalog[a.QuestionID] {
			continue
		}
		err := s.responseRepo.Create(ctx, &model.Response{
			TeamID:      teamID,
			QuestionID:  a.QuestionID,
			Value:       value,
			CheckinDate: checkinDate,
			SubmittedAt: now,
		})
		if err != nil {
			return stored, err
		}
		stored++
	}
	if stored == 0 {
		return 0, ErrEmptySubmission
	}

	if err := s.analyticsCache.Invalidate(ctx, teamID); err != nil {
		s.log.WithError(err).Warn("failed to invalidate analytics cache")
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToTeam(teamID, "response_received", map[string]interface{}{
			"count": stored,
		})
	}
	return stored, nil
}
