package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// SMTPMailer delivers suggested replies through a fixed SMTP account.
type SMTPMailer struct {
	host     string
	port     string
	sender   string
	password string
	logger   *slog.Logger
}

func NewSMTPMailer(host, port, sender, password string, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		sender:   sender,
		password: password,
		logger:   logger,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	if m.sender == "" || m.password == "" {
		return fmt.Errorf("SMTP sender credentials are not configured")
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.sender))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", m.sender, m.password, m.host)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	if err := smtp.SendMail(addr, auth, m.sender, []string{to}, []byte(msg.String())); err != nil {
		m.logger.Error("Failed to send email",
			slog.String("to", to),
			slog.String("error", err.Error()))
		return fmt.Errorf("error sending email: %w", err)
	}

	m.logger.Info("Email sent",
		slog.String("to", to),
		slog.String("subject", subject))
	return nil
}
