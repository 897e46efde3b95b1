package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/grievance-service/internal/config"
)

// Mailer sends a single HTML email and reports the outcome synchronously.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, htmlBody string) error
}

type smtpMailer struct {
	cfg    config.MailerConfig
	logger *zap.Logger
}

// NewSMTPMailer builds a Mailer over plain SMTP with STARTTLS auth.
func NewSMTPMailer(cfg config.MailerConfig, logger *zap.Logger) Mailer {
	return &smtpMailer{cfg: cfg, logger: logger}
}

func (m *smtpMailer) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	if strings.TrimSpace(m.cfg.SMTPHost) == "" {
		return fmt.Errorf("smtp host not configured")
	}

	msg := buildMessage(m.cfg.SenderName, m.cfg.From, recipient, subject, htmlBody)
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
	}

	// smtp.SendMail has no context support; run it aside and respect ctx.
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.cfg.From, []string{recipient}, msg)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			m.logger.Warn("smtp send failed", zap.String("recipient", recipient), zap.Error(err))
		}
		return err
	}
}

func buildMessage(senderName, from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", senderName, from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}
