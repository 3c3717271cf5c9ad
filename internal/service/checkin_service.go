package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/scot00671234/wishwello/internal/model"
	"github.com/scot00671234/wishwello/internal/repository"
)

// Mailer sends outbound mail. Satisfied by the SMTP mailer in notify.
type Mailer interface {
	SendCheckinInvite(ctx context.Context, to string, team *model.Team) error
}

// CheckinService dispatches scheduled check-in invitations. RunHourly is
// driven by the cron scheduler once per hour.
type CheckinService struct {
	scheduleRepo repository.ScheduleRepo
	teamRepo     repository.TeamRepo
	employeeRepo repository.EmployeeRepo
	mailer       Mailer
	log          *logrus.Logger
}

// NewCheckinService creates a new check-in service
func NewCheckinService(
	scheduleRepo repository.ScheduleRepo,
	teamRepo repository.TeamRepo,
	employeeRepo repository.EmployeeRepo,
	mailer Mailer,
	log *logrus.Logger,
) *CheckinService {
	return &CheckinService{
		scheduleRepo: scheduleRepo,
		teamRepo:     teamRepo,
		employeeRepo: employeeRepo,
		mailer:       mailer,
		log:          log,
	}
}

// RunHourly sends invitations for every active schedule that is due at now.
// A failing team is logged and skipped so its siblings still go out.
func (s *CheckinService) RunHourly(ctx context.Context, now time.Time) error {
	schedules, err := s.scheduleRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	for _, schedule := range schedules {
		if !scheduleDue(schedule, now) {
			continue
		}
		if err := s.sendCheckin(ctx, schedule, now); err != nil {
			s.log.WithError(err).WithField("teamId", schedule.TeamID).Error("check-in dispatch failed")
		}
	}
	return nil
}

// scheduleDue reports whether the schedule fires in now's hour. Schedules
// store days as 1-7 Monday-Sunday; time.Weekday counts Sunday as 0.
// A schedule fires at most once per calendar day. Frequency is stored and
// validated but not yet consulted here, so biweekly and monthly schedules
// currently fire every week.
func scheduleDue(schedule *model.CheckinSchedule, now time.Time) bool {
	if int(now.Weekday()) != schedule.DayOfWeek%7 {
		return false
	}
	if now.Hour() != schedule.Hour {
		return false
	}
	if schedule.LastSentAt != nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if !schedule.LastSentAt.Before(today) {
			return false
		}
	}
	return true
}

func (s *CheckinService) sendCheckin(ctx context.Context, schedule *model.CheckinSchedule, now time.Time) error {
	team, err := s.teamRepo.GetByID(ctx, schedule.TeamID)
	if err != nil {
		return err
	}
	if team == nil {
		s.log.WithField("teamId", schedule.TeamID).Warn("schedule references missing team, skipping")
		return nil
	}

	employees, err := s.employeeRepo.ListByTeam(ctx, schedule.TeamID)
	if err != nil {
		return err
	}

	sent := 0
	for _, e := range employees {
		if !e.IsActive {
			continue
		}
		if err := s.mailer.SendCheckinInvite(ctx, e.Email, team); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"teamId": team.ID,
				"email":  e.Email,
			}).Error("failed to send check-in invite")
			continue
		}
		sent++
	}

	s.log.WithFields(logrus.Fields{
		"teamId": team.ID,
		"sent":   sent,
	}).Info("check-in invitations dispatched")

	return s.scheduleRepo.MarkSent(ctx, schedule.ID, now)
}
