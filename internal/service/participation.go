package service

import (
	"math"

	"github.com/scot00671234/wishwello/internal/model"
)

// approximateRespondents counts distinct submission days. Responses carry no
// respondent identity, so a respondent answering their whole survey within
// one calendar day is approximated as one group per day. This undercounts
// when several people answer on the same day.
func approximateRespondents(responses []*model.Response) int {
	days := make(map[string]struct{})
	for _, r := range responses {
		days[r.SubmittedAt.Format("2006-01-02")] = struct{}{}
	}
	return len(days)
}

// EstimateParticipation approximates how many employees took part and the
// resulting response rate. A zero employee count yields a zero rate.
func EstimateParticipation(responses []*model.Response, employeeCount int) model.Participation {
	unique := approximateRespondents(responses)
	rate := 0
	if employeeCount > 0 {
		rate = int(math.Round(100 * float64(unique) / float64(employeeCount)))
	}
	return model.Participation{
		UniqueRespondents: unique,
		ResponseRate:      rate,
	}
}
