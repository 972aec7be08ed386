package mailer

import (
	"context"

	"go.uber.org/zap"
)

// NoopMailer logs instead of sending. Used when no provider token is
// configured (local development, tests).
type NoopMailer struct {
	logger *zap.Logger
}

func NewNoopMailer(logger *zap.Logger) *NoopMailer {
	return &NoopMailer{logger: logger.Named("NoopMailer")}
}

func (s *NoopMailer) Send(_ context.Context, tmpl TemplateType, toEmail, _ string, vars map[string]string) error {
	s.logger.Info("email suppressed (no mail provider configured)",
		zap.String("template", string(tmpl)),
		zap.String("toEmail", toEmail),
		zap.Any("vars", vars))
	return nil
}
