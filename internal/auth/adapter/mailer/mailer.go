package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"curiovault/internal/auth/config"
	"curiovault/internal/shared/logger"
)

// Mailer delivers account emails. Implementations must be safe for concurrent use.
type Mailer interface {
	SendVerification(ctx context.Context, toEmail, token string) error
	SendPasswordReset(ctx context.Context, toEmail, token string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	addr    string
	from    string
	baseURL string
}

// NewSMTPMailer creates a mailer for the configured relay
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		addr:    cfg.SMTPAddr,
		from:    cfg.SMTPFrom,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
}

func (m *SMTPMailer) SendVerification(ctx context.Context, toEmail, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.baseURL, token)
	body := fmt.Sprintf("Welcome to CurioVault!\r\n\r\nVerify your email address by visiting:\r\n%s\r\n\r\nThe link expires in 24 hours.\r\n", link)
	return m.send(toEmail, "Verify your email", body)
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.baseURL, token)
	body := fmt.Sprintf("A password reset was requested for your account.\r\n\r\nReset your password by visiting:\r\n%s\r\n\r\nThe link expires in 2 hours. If you did not request this, ignore this email.\r\n", link)
	return m.send(toEmail, "Reset your password", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s", m.from, to, subject, body)
	return smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(msg))
}

// LogMailer logs emails instead of sending them. Used when SMTP_ADDR is not
// configured, typically in development.
type LogMailer struct {
	log logger.Logger
}

// NewLogMailer creates a mailer that only logs
func NewLogMailer(log logger.Logger) *LogMailer {
	return &LogMailer{log: log.WithComponent("mailer")}
}

func (m *LogMailer) SendVerification(ctx context.Context, toEmail, token string) error {
	m.log.WithFields(map[string]interface{}{"to": toEmail, "token": token}).Info("verification email (not sent)")
	return nil
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	m.log.WithFields(map[string]interface{}{"to": toEmail, "token": token}).Info("password reset email (not sent)")
	return nil
}

// NewMailer picks the SMTP mailer when a relay is configured, the log mailer
// otherwise.
func NewMailer(cfg *config.Config, log logger.Logger) Mailer {
	if cfg.SMTPAddr != "" {
		return NewSMTPMailer(cfg)
	}
	return NewLogMailer(log)
}

var (
	_ Mailer = (*SMTPMailer)(nil)
	_ Mailer = (*LogMailer)(nil)
)
