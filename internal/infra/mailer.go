package infra

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/prajapatkavitha/restaurant-management-project/internal/config"
)

// Mailer wraps SMTP configuration for sending notification emails.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Send delivers a plain-text email. Attachment path is optional.
func (m *Mailer) Send(to, subject, body, attachPath string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if attachPath != "" {
		if _, err := e.AttachFile(attachPath); err != nil {
			return fmt.Errorf("mailer: attach file: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
