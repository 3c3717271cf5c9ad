package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/scot00671234/wishwello/internal/model"
	"github.com/scot00671234/wishwello/internal/repository"
)

// EmailAlertSink delivers pulse alerts to the owning manager's inbox
type EmailAlertSink struct {
	teamRepo    repository.TeamRepo
	managerRepo repository.ManagerRepo
	mailer      *SMTPMailer
	log         *logrus.Logger
}

// NewEmailAlertSink creates a new email alert sink
func NewEmailAlertSink(teamRepo repository.TeamRepo, managerRepo repository.ManagerRepo, mailer *SMTPMailer, log *logrus.Logger) *EmailAlertSink {
	return &EmailAlertSink{
		teamRepo:    teamRepo,
		managerRepo: managerRepo,
		mailer:      mailer,
		log:         log,
	}
}

// Notify resolves the team's manager and mails the alert
func (s *EmailAlertSink) Notify(ctx context.Context, alert model.PulseAlert) error {
	team, err := s.teamRepo.GetByID(ctx, alert.TeamID)
	if err != nil {
		return err
	}
	if team == nil {
		s.log.WithField("teamId", alert.TeamID).Warn("alert for missing team, dropping")
		return nil
	}

	manager, err := s.managerRepo.GetByID(ctx, team.ManagerID)
	if err != nil {
		return err
	}
	if manager == nil {
		s.log.WithField("teamId", alert.TeamID).Warn("alert for team without manager, dropping")
		return nil
	}

	return s.mailer.SendPulseAlert(ctx, manager.Email, team, alert)
}
