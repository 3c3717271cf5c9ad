package model

import "time"

// PulseScore is one weekly wellbeing score for a team. Rows form an
// append-only time series keyed by (teamId, weekStarting); WeekStarting is
// the Sunday-aligned start of the week.
type PulseScore struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	TeamID         string    `json:"teamId" bson:"teamId"`
	Score          float64   `json:"score" bson:"score"` // 1-10, one decimal place
	ResponseCount  int       `json:"responseCount" bson:"responseCount"`
	TotalEmployees int       `json:"totalEmployees" bson:"totalEmployees"`
	WeekStarting   time.Time `json:"weekStarting" bson:"weekStarting"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

// PulseAlert is emitted when a team's score drops by more than the alert
// threshold week over week. Consumed by notification sinks.
type PulseAlert struct {
	TeamID       string  `json:"teamId"`
	CurrentScore float64 `json:"currentScore"`
	Drop         float64 `json:"drop"`
}
