package service

import (
	"context"

	"github.com/scot00671234/wishwello/internal/model"
)

// PulseDropThreshold is the week-over-week score drop above which an alert
// fires. The comparison is strictly greater-than and one-sided; improvements
// never alert.
const PulseDropThreshold = 2.0

// AlertSink receives pulse alerts. Delivery is fire-and-forget from the
// core's point of view; a failing sink is logged, never fatal.
type AlertSink interface {
	Notify(ctx context.Context, alert model.PulseAlert) error
}

// EvaluatePulseTrend compares the two most recent weekly scores (newest
// first) and returns an alert when the drop exceeds the threshold.
func EvaluatePulseTrend(current, previous *model.PulseScore) *model.PulseAlert {
	if current == nil || previous == nil {
		return nil
	}
	drop := previous.Score - current.Score
	if drop <= PulseDropThreshold {
		return nil
	}
	return &model.PulseAlert{
		TeamID:       current.TeamID,
		CurrentScore: current.Score,
		Drop:         round1(drop),
	}
}
