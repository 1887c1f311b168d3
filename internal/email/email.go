// Package email delivers transactional mail over SMTP.
package email

import (
	"context"

	"membercare_backend/platform/config"
)

// Sender delivers transactional emails. Callers treat delivery as
// best-effort; failures must not fail the triggering operation.
type Sender interface {
	SendChurchWelcomeEmail(ctx context.Context, toEmail, adminName, churchName string) error
	SendMemberWelcomeEmail(ctx context.Context, toEmail, memberName, churchName string) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

// NoopSender is used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) SendChurchWelcomeEmail(ctx context.Context, toEmail, adminName, churchName string) error {
	return nil
}

func (NoopSender) SendMemberWelcomeEmail(ctx context.Context, toEmail, memberName, churchName string) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

// NewSender returns an SMTP-backed sender, or a NoopSender when email
// delivery is not configured.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.IsEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}
