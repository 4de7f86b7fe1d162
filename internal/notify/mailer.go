package notify

import (
	"fmt"
	"net/smtp"

	"github.com/joroheos90/easygymapp/internal/config"
)

// Mailer delivers a single message.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	addr     string
	auth     smtp.Auth
	from     string
	fromName string
}

func NewSMTPMailer(cfg *config.Config) Mailer {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}

	return &smtpMailer{
		addr:     fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort),
		auth:     auth,
		from:     cfg.EmailFrom,
		fromName: cfg.EmailFromName,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		m.fromName, m.from, to, subject, body)

	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
}
