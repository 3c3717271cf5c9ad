package model

import "time"

// Response is an anonymous survey answer. Rows are append-only and carry no
// respondent identity. Value semantics depend on the owning question's type:
// metric -> "1".."10", yesno -> "yes"/"no", comment -> free text.
type Response struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	TeamID      string    `json:"teamId" bson:"teamId"`
	QuestionID  string    `json:"questionId" bson:"questionId"`
	Value       string    `json:"value" bson:"value"`
	CheckinDate time.Time `json:"checkinDate" bson:"checkinDate"` // start of the submission day
	SubmittedAt time.Time `json:"submittedAt" bson:"submittedAt"`
}
