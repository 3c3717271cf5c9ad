package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/scot00671234/wishwello/internal/config"
	"github.com/scot00671234/wishwello/internal/model"
)

// SMTPMailer sends transactional mail over plain SMTP. With no SMTP host
// configured it logs and drops mail instead of failing, so local setups
// work without a mail server.
type SMTPMailer struct {
	host    string
	port    string
	user    string
	pass    string
	from    string
	baseURL string
	log     *logrus.Logger
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(cfg *config.AppConfig, log *logrus.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:    cfg.SMTPHost,
		port:    cfg.SMTPPort,
		user:    cfg.SMTPUser,
		pass:    cfg.SMTPPass,
		from:    cfg.SMTPFrom,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		log:     log,
	}
}

// SendCheckinInvite mails one employee their anonymous survey link
func (m *SMTPMailer) SendCheckinInvite(ctx context.Context, to string, team *model.Team) error {
	link := fmt.Sprintf("%s/feedback/%s", m.baseURL, team.ID)
	subject := fmt.Sprintf("How was your week at %s?", team.Name)
	body := fmt.Sprintf(
		"Hi,\r\n\r\n"+
			"It's time for your team check-in. Your answers are completely anonymous\r\n"+
			"and take less than a minute:\r\n\r\n"+
			"%s\r\n\r\n"+
			"Thanks for sharing your feedback!\r\n",
		link,
	)
	return m.send(to, subject, body)
}

// SendPulseAlert mails the manager about a significant pulse drop
func (m *SMTPMailer) SendPulseAlert(ctx context.Context, to string, team *model.Team, alert model.PulseAlert) error {
	subject := fmt.Sprintf("Pulse alert: %s needs attention", team.Name)
	body := fmt.Sprintf(
		"Hi,\r\n\r\n"+
			"The weekly pulse score for %s dropped by %.1f points to %.1f.\r\n"+
			"A drop this size usually means something changed for the team;\r\n"+
			"it may be worth checking in with them.\r\n\r\n"+
			"View the dashboard: %s/dashboard/%s\r\n",
		team.Name, alert.Drop, alert.CurrentScore, m.baseURL, team.ID,
	)
	return m.send(to, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if m.host == "" {
		m.log.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Debug("smtp not configured, dropping email")
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, []byte(msg))
}
