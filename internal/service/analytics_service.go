package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/scot00671234/wishwello/internal/cache"
	"github.com/scot00671234/wishwello/internal/model"
	"github.com/scot00671234/wishwello/internal/repository"
)

var ErrTeamNotFound = errors.New("team not found")

// Fixed keyword lists for the comment heuristic. Matching is
// case-insensitive substring; each comment counts at most once per category.
var (
	positiveWords      = []string{"good", "great", "excellent", "happy", "satisfied", "love", "amazing", "wonderful", "positive", "enjoy", "appreciate"}
	negativeWords      = []string{"bad", "terrible", "awful", "unhappy", "frustrated", "hate", "difficult", "problem", "issue", "concern", "worried"}
	stressWords        = []string{"stress", "overwhelmed", "burnout", "tired", "exhausted", "pressure", "deadline"}
	communicationWords = []string{"communication", "feedback", "meeting", "talk", "discuss", "share", "listen"}
)

// Comments at or below this length, counted in characters rather than
// bytes, are treated as noise and excluded from all comment analytics.
const minCommentLength = 5

// commentPreviewLimit caps the raw comments exposed on the analytics view
const commentPreviewLimit = 5

// AnalyticsService turns raw anonymous responses into per-question and
// overall aggregates for the analytics view
type AnalyticsService struct {
	teamRepo       repository.TeamRepo
	questionRepo   repository.QuestionRepo
	responseRepo   repository.ResponseRepo
	employeeRepo   repository.EmployeeRepo
	analyticsCache cache.AnalyticsCache
	log            *logrus.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	teamRepo repository.TeamRepo,
	questionRepo repository.QuestionRepo,
	responseRepo repository.ResponseRepo,
	employeeRepo repository.EmployeeRepo,
	analyticsCache cache.AnalyticsCache,
	log *logrus.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		teamRepo:       teamRepo,
		questionRepo:   questionRepo,
		responseRepo:   responseRepo,
		employeeRepo:   employeeRepo,
		analyticsCache: analyticsCache,
		log:            log,
	}
}

// Report computes the analytics payload for a team. A zero from/to selects
// the default window of the last 30 days; only that default window is served
// from cache.
func (s *AnalyticsService) Report(ctx context.Context, teamID string, from, to time.Time) (*model.AnalyticsReport, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}

	defaultWindow := from.IsZero() && to.IsZero()
	if defaultWindow {
		from = time.Now().AddDate(0, 0, -30)
		if cached, err := s.analyticsCache.GetReport(ctx, teamID); err == nil && cached != nil {
			return cached, nil
		}
	}

	questions, err := s.questionRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	responses, err := s.responseRepo.ListByTeam(ctx, teamID, from, to)
	if err != nil {
		return nil, err
	}
	employeeCount, err := s.employeeRepo.CountActive(ctx, teamID)
	if err != nil {
		return nil, err
	}

	questionAnalytics := ComputeAnalytics(questions, responses)
	participation := EstimateParticipation(responses, employeeCount)

	cutoff := time.Now().AddDate(0, 0, -30)
	per30 := 0
	for _, r := range responses {
		if !r.SubmittedAt.Before(cutoff) {
			per30++
		}
	}

	report := &model.AnalyticsReport{
		Team: model.TeamSummary{
			Name:        team.Name,
			CompanyName: team.CompanyName,
		},
		QuestionAnalytics: questionAnalytics,
		OverallInsights:   ComputeOverallInsights(questionAnalytics, responses),
		ResponseStats: model.ResponseStats{
			TotalResponses:         len(responses),
			ApproximateRespondents: participation.UniqueRespondents,
			ResponsesPer30Days:     per30,
		},
	}

	if defaultWindow {
		if err := s.analyticsCache.SetReport(ctx, teamID, report); err != nil {
			s.log.WithError(err).Warn("failed to cache analytics report")
		}
	}
	return report, nil
}

// ComputeAnalytics aggregates responses per question. Pure function of its
// inputs: responses for ids missing from the catalog are dropped by the join.
func ComputeAnalytics(questions []*model.Question, responses []*model.Response) []model.QuestionAnalytics {
	byQuestion := make(map[string][]*model.Response)
	for _, r := range responses {
		byQuestion[r.QuestionID] = append(byQuestion[r.QuestionID], r)
	}

	analytics := make([]model.QuestionAnalytics, 0, len(questions))
	for _, q := range questions {
		qa := model.QuestionAnalytics{
			QuestionID: q.ID,
			Title:      q.Title,
			Type:       q.Type,
		}
		qResponses := byQuestion[q.ID]

		switch q.Type {
		case model.QuestionTypeMetric:
			analyzeMetric(&qa, qResponses)
		case model.QuestionTypeYesNo:
			analyzeYesNo(&qa, qResponses)
		case model.QuestionTypeComment:
			analyzeComments(&qa, qResponses)
		}
		analytics = append(analytics, qa)
	}
	return analytics
}

// analyzeMetric is deliberately lenient: only values that fail to parse are
// excluded, out-of-1-10 integers still count. The weekly pulse feed applies
// the strict bound instead.
func analyzeMetric(qa *model.QuestionAnalytics, responses []*model.Response) {
	var values []int
	for _, r := range responses {
		v, err := strconv.Atoi(strings.TrimSpace(r.Value))
		if err != nil {
			continue
		}
		values = append(values, v)
	}

	if len(values) == 0 {
		qa.TotalResponses = 0
		qa.Distribution = map[string]int{}
		qa.Insights = []string{"No responses yet for this question."}
		return
	}

	sum := 0
	distribution := make(map[string]int)
	for _, v := range values {
		sum += v
		distribution[strconv.Itoa(v)]++
	}
	mean := float64(sum) / float64(len(values))
	average := round1(mean)

	qa.TotalResponses = len(values)
	qa.Average = &average
	qa.Distribution = distribution

	switch {
	case average >= 8:
		qa.Insights = append(qa.Insights, "Excellent scores! Team is performing very well in this area.")
	case average >= 6:
		qa.Insights = append(qa.Insights, "Good scores with room for improvement.")
	default:
		qa.Insights = append(qa.Insights, "Scores indicate this area needs attention and support.")
	}

	if len(values) >= 5 {
		variance := 0.0
		for _, v := range values {
			d := float64(v) - mean
			variance += d * d
		}
		variance /= float64(len(values))

		if variance > 4 {
			qa.Insights = append(qa.Insights, "High variation in responses suggests mixed experiences across the team.")
		} else {
			qa.Insights = append(qa.Insights, "Consistent responses indicate aligned team experiences.")
		}
	}
}

// analyzeYesNo ignores answers that are neither yes nor no. Percentages are
// rounded independently, so they may not sum to exactly 100.
func analyzeYesNo(qa *model.QuestionAnalytics, responses []*model.Response) {
	yesCount, noCount := 0, 0
	for _, r := range responses {
		switch strings.ToLower(strings.TrimSpace(r.Value)) {
		case "yes":
			yesCount++
		case "no":
			noCount++
		}
	}

	total := yesCount + noCount
	if total == 0 {
		qa.TotalResponses = 0
		qa.Insights = []string{"No responses yet for this question."}
		return
	}

	yesPct := roundPercent(yesCount, total)
	noPct := roundPercent(noCount, total)

	qa.TotalResponses = total
	qa.YesCount = &yesCount
	qa.NoCount = &noCount
	qa.YesPercentage = &yesPct
	qa.NoPercentage = &noPct

	switch {
	case yesPct >= 80:
		qa.Insights = []string{"Strong positive consensus on this question."}
	case yesPct >= 60:
		qa.Insights = []string{"Majority positive, but some concerns exist."}
	case yesPct >= 40:
		qa.Insights = []string{"Mixed responses suggest this area needs attention."}
	default:
		qa.Insights = []string{"Significant concerns - this area requires immediate focus."}
	}
}

func analyzeComments(qa *model.QuestionAnalytics, responses []*model.Response) {
	var comments []string
	for _, r := range responses {
		if utf8.RuneCountInString(r.Value) > minCommentLength {
			comments = append(comments, r.Value)
		}
	}

	if len(comments) == 0 {
		qa.TotalResponses = 0
		qa.Insights = []string{"No comments yet for this question."}
		return
	}

	counts := model.SentimentCounts{}
	for _, c := range comments {
		lower := strings.ToLower(c)
		if containsAny(lower, positiveWords) {
			counts.Positive++
		}
		if containsAny(lower, negativeWords) {
			counts.Negative++
		}
		if containsAny(lower, stressWords) {
			counts.Stress++
		}
		if containsAny(lower, communicationWords) {
			counts.Communication++
		}
	}

	commentCount := len(comments)
	var themes []string
	if counts.Stress > 0 {
		themes = append(themes, "Stress/Workload ("+strconv.Itoa(counts.Stress)+" mentions)")
	}
	if counts.Communication > 0 {
		themes = append(themes, "Communication ("+strconv.Itoa(counts.Communication)+" mentions)")
	}
	if float64(counts.Positive) >= 0.6*float64(commentCount) {
		themes = append(themes, "Generally Positive Feedback")
	}
	if float64(counts.Negative) >= 0.4*float64(commentCount) {
		themes = append(themes, "Areas of Concern Identified")
	}

	var insights []string
	switch {
	case counts.Positive > counts.Negative:
		insights = append(insights, "Overall positive sentiment in team feedback.")
	case counts.Negative > counts.Positive:
		insights = append(insights, "Comments highlight areas needing attention.")
	default:
		insights = append(insights, "Mixed sentiment in feedback.")
	}
	if float64(counts.Stress) >= 0.3*float64(commentCount) {
		insights = append(insights, "Several comments mention stress or workload - consider checking in with the team.")
	}

	preview := comments
	if len(preview) > commentPreviewLimit {
		preview = preview[:commentPreviewLimit]
	}

	totalComments := commentCount
	qa.TotalResponses = commentCount
	qa.Comments = preview
	qa.TotalComments = &totalComments
	qa.Themes = themes
	qa.SentimentCounts = &counts
	qa.Insights = insights
}

// ComputeOverallInsights summarizes the whole survey across questions
func ComputeOverallInsights(analytics []model.QuestionAnalytics, responses []*model.Response) []string {
	if len(responses) == 0 {
		return []string{"No responses collected yet."}
	}

	respondents := approximateRespondents(responses)
	insights := []string{
		"Collected " + strconv.Itoa(len(responses)) + " responses from approximately " + strconv.Itoa(respondents) + " team members.",
	}

	sum, count := 0.0, 0
	for _, qa := range analytics {
		if qa.Type == model.QuestionTypeMetric && qa.TotalResponses > 0 && qa.Average != nil {
			sum += *qa.Average
			count++
		}
	}
	if count > 0 {
		overall := sum / float64(count)
		switch {
		case overall >= 7.5:
			insights = append(insights, "🎉 Team wellbeing scores are strong across the board!")
		case overall >= 6:
			insights = append(insights, "Team wellbeing is good, with some opportunities for improvement.")
		default:
			insights = append(insights, "Team wellbeing scores suggest the team needs support.")
		}
	}
	return insights
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundPercent(part, total int) int {
	return int(math.Round(100 * float64(part) / float64(total)))
}
