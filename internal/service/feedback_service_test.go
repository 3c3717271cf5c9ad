package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scot00671234/wishwello/internal/model"
)

type recordingBroadcaster struct {
	teamIDs []string
	types   []string
}

func (b *recordingBroadcaster) BroadcastToTeam(teamID string, msgType string, payload interface{}) {
	b.teamIDs = append(b.teamIDs, teamID)
	b.types = append(b.types, msgType)
}

func newFeedbackService(responseRepo *stubResponseRepo) (*FeedbackService, *stubAnalyticsCache, *recordingBroadcaster) {
	analyticsCache := &stubAnalyticsCache{}
	broadcaster := &recordingBroadcaster{}
	svc := NewFeedbackService(
		newStubTeamRepo(&model.Team{ID: "team-1", Name: "Platform", ManagerID: "mgr-1"}),
		&stubQuestionRepo{questions: []*model.Question{
			{ID: "q1", Title: "How was your week?", Type: model.QuestionTypeMetric},
			{ID: "q2", Title: "Anything else?", Type: model.QuestionTypeComment},
		}},
		responseRepo,
		analyticsCache,
		testLogger(),
	)
	svc.SetBroadcaster(broadcaster)
	return svc, analyticsCache, broadcaster
}

func TestSubmitStoresPerQuestionResponses(t *testing.T) {
	responseRepo := &stubResponseRepo{}
	svc, analyticsCache, broadcaster := newFeedbackService(responseRepo)
	analyticsCache.report = &model.AnalyticsReport{}

	stored, err := svc.Submit(context.Background(), "team-1", []SubmittedAnswer{
		{QuestionID: "q1", Value: "8"},
		{QuestionID: "q2", Value: "Good sprint overall"},
		{QuestionID: "q-removed", Value: "ignored"}, // no longer in the catalog
		{QuestionID: "q1", Value: "   "},            // blank
	})
	require.NoError(t, err)
	assert.Equal(t, 2, stored)
	require.Len(t, responseRepo.created, 2)

	first := responseRepo.created[0]
	assert.Equal(t, "team-1", first.TeamID)
	assert.Equal(t, "q1", first.QuestionID)
	assert.Equal(t, "8", first.Value)
	assert.False(t, first.SubmittedAt.IsZero())
	assert.Equal(t, 0, first.CheckinDate.Hour(), "check-in date is normalized to start of day")

	assert.Nil(t, analyticsCache.report, "cache invalidated on new responses")
	assert.Equal(t, []string{"team-1"}, broadcaster.teamIDs)
	assert.Equal(t, []string{"response_received"}, broadcaster.types)
}

func TestSubmitEmptySubmission(t *testing.T) {
	responseRepo := &stubResponseRepo{}
	svc, _, broadcaster := newFeedbackService(responseRepo)

	_, err := svc.Submit(context.Background(), "team-1", []SubmittedAnswer{
		{QuestionID: "q-removed", Value: "ignored"},
	})
	assert.ErrorIs(t, err, ErrEmptySubmission)
	assert.Empty(t, responseRepo.created)
	assert.Empty(t, broadcaster.teamIDs)
}

func TestSubmitUnknownTeam(t *testing.T) {
	svc, _, _ := newFeedbackService(&stubResponseRepo{})

	_, err := svc.Submit(context.Background(), "missing", []SubmittedAnswer{
		{QuestionID: "q1", Value: "8"},
	})
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestGetForm(t *testing.T) {
	svc, _, _ := newFeedbackService(&stubResponseRepo{})

	team, questions, err := svc.GetForm(context.Background(), "team-1")
	require.NoError(t, err)
	assert.Equal(t, "Platform", team.Name)
	assert.Len(t, questions, 2)

	_, _, err = svc.GetForm(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
