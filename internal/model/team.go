package model

import "time"

// Team is a manager-owned group of employees that receives pulse surveys
type Team struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	CompanyName string    `json:"companyName,omitempty" bson:"companyName,omitempty"`
	ManagerID   string    `json:"managerId" bson:"managerId"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Employee is a roster entry. It exists only so the survey link can be
// delivered and participation estimated; responses are never linked back to it.
type Employee struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	TeamID    string    `json:"teamId" bson:"teamId"`
	Email     string    `json:"email" bson:"email"`
	IsActive  bool      `json:"isActive" bson:"isActive"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// CheckinSchedule configures when survey invites go out for a team
type CheckinSchedule struct {
	ID         string     `json:"id" bson:"_id,omitempty"`
	TeamID     string     `json:"teamId" bson:"teamId"`
	Frequency  string     `json:"frequency" bson:"frequency"` // "weekly", "biweekly", "monthly"
	DayOfWeek  int        `json:"dayOfWeek" bson:"dayOfWeek"` // 1-7 (Monday-Sunday)
	Hour       int        `json:"hour" bson:"hour"`           // 0-23
	IsActive   bool       `json:"isActive" bson:"isActive"`
	LastSentAt *time.Time `json:"lastSentAt,omitempty" bson:"lastSentAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
}
