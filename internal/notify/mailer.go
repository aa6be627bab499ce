// Package notify sends plain-text failure notifications over SMTP to the
// configured address. With no SMTP host configured it is a no-op.
package notify

import (
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"fakestore-etl/internal/config"
	"fakestore-etl/internal/logger"
)

type Mailer struct {
	smtp  config.SMTPConfig
	owner string
	to    string
	log   zerolog.Logger
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		smtp:  cfg.SMTP,
		owner: cfg.Scheduler.Owner,
		to:    cfg.Scheduler.NotifyEmail,
		log:   logger.Get(),
	}
}

func (m *Mailer) PipelineFailed(state string, cause error) error {
	if m.smtp.Host == "" || m.smtp.From == "" || m.to == "" {
		m.log.Debug().Msg("SMTP not configured, skipping failure notification")
		return nil
	}

	subject := fmt.Sprintf("ETL pipeline run failed (%s)", state)
	body := fmt.Sprintf("Owner: %s\nTerminal state: %s\nError: %v\n", m.owner, state, cause)

	headers := []string{
		"From: " + m.smtp.From,
		"To: " + m.to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + body

	addr := net.JoinHostPort(m.smtp.Host, strconv.Itoa(m.smtp.Port))
	var auth smtp.Auth
	if m.smtp.Username != "" {
		auth = smtp.PlainAuth("", m.smtp.Username, m.smtp.Password, m.smtp.Host)
	}

	if err := smtp.SendMail(addr, auth, m.smtp.From, []string{m.to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send notification to %s: %w", m.to, err)
	}

	m.log.Info().Str("to", m.to).Str("state", state).Msg("Failure notification sent")
	return nil
}
