package model

import "time"

// SentimentCounts holds keyword-heuristic hit totals over a set of comments.
// Each comment contributes at most one hit per category.
type SentimentCounts struct {
	Positive      int `json:"positive"`
	Negative      int `json:"negative"`
	Stress        int `json:"stress"`
	Communication int `json:"communication"`
}

// QuestionAnalytics is the per-question aggregate shown on the analytics
// view. Exactly one of the metric/yesno/comment field groups is populated,
// selected by Type; the rest stay nil and are omitted on the wire.
type QuestionAnalytics struct {
	QuestionID     string       `json:"questionId"`
	Title          string       `json:"title"`
	Type           QuestionType `json:"type"`
	TotalResponses int          `json:"totalResponses"`
	Insights       []string     `json:"insights"`

	// Metric questions. Distribution is non-nil for every metric question,
	// so it serializes as {} rather than disappearing when there is no data.
	Average      *float64       `json:"average,omitempty"`
	Distribution map[string]int `json:"distribution,omitzero"`

	// Yes/no questions
	YesCount      *int `json:"yesCount,omitempty"`
	NoCount       *int `json:"noCount,omitempty"`
	YesPercentage *int `json:"yesPercentage,omitempty"`
	NoPercentage  *int `json:"noPercentage,omitempty"`

	// Comment questions
	Comments        []string         `json:"comments,omitempty"` // preview, capped at 5
	TotalComments   *int             `json:"totalComments,omitempty"`
	Themes          []string         `json:"themes,omitempty"`
	SentimentCounts *SentimentCounts `json:"sentimentCounts,omitempty"`
}

// TeamSummary identifies the team on the analytics view
type TeamSummary struct {
	Name        string `json:"name"`
	CompanyName string `json:"companyName,omitempty"`
}

// ResponseStats summarizes raw volume and the anonymous participation estimate
type ResponseStats struct {
	TotalResponses         int `json:"totalResponses"`
	ApproximateRespondents int `json:"approximateRespondents"`
	ResponsesPer30Days     int `json:"responsesPer30Days"`
}

// AnalyticsReport is the full analytics payload for a team over a date range
type AnalyticsReport struct {
	Team              TeamSummary         `json:"team"`
	QuestionAnalytics []QuestionAnalytics `json:"questionAnalytics"`
	OverallInsights   []string            `json:"overallInsights"`
	ResponseStats     ResponseStats       `json:"responseStats"`
}

// Participation is the anonymous unique-respondent approximation
type Participation struct {
	UniqueRespondents int `json:"uniqueRespondents"`
	ResponseRate      int `json:"responseRate"` // 0-100
}

// PulsePoint is one entry of the dashboard trend chart
type PulsePoint struct {
	Date          time.Time `json:"date"`
	Score         float64   `json:"score"`
	ResponseCount int       `json:"responseCount"`
}

// RecentComment is a free-text answer surfaced on the dashboard
type RecentComment struct {
	Text        string    `json:"text"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// DashboardData is the manager dashboard payload
type DashboardData struct {
	CurrentPulse   *float64        `json:"currentPulse"`
	Trend          float64         `json:"trend"`
	ResponseRate   int             `json:"responseRate"` // 0-100
	TotalEmployees int             `json:"totalEmployees"`
	PulseHistory   []PulsePoint    `json:"pulseHistory"`
	RecentComments []RecentComment `json:"recentComments"`
}
