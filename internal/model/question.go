package model

import "time"

// QuestionType defines how a question is answered and aggregated
type QuestionType string

const (
	QuestionTypeMetric  QuestionType = "metric"  // 1-10 integer scale
	QuestionTypeYesNo   QuestionType = "yesno"   // binary yes/no
	QuestionTypeComment QuestionType = "comment" // free text
)

// Valid reports whether t is one of the known question types
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeMetric, QuestionTypeYesNo, QuestionTypeComment:
		return true
	}
	return false
}

// Question is a survey question in a team's catalog. Catalogs are replaced
// as a whole per team; Order is zero-based and contiguous.
type Question struct {
	ID         string       `json:"id" bson:"_id,omitempty"`
	TeamID     string       `json:"teamId" bson:"teamId"`
	Title      string       `json:"title" bson:"title"`
	Type       QuestionType `json:"type" bson:"type"`
	IsRequired bool         `json:"isRequired" bson:"isRequired"`
	Order      int          `json:"order" bson:"order"`
	CreatedAt  time.Time    `json:"createdAt" bson:"createdAt"`
}
