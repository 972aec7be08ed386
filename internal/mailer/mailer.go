package mailer

import "context"

// TemplateType selects the transactional template on the provider side.
type TemplateType string

const (
	TemplateWelcome             TemplateType = "welcome"
	TemplateEmailVerification   TemplateType = "email_verification"
	TemplatePasswordReset       TemplateType = "password_reset"
	TemplateApplicationReceived TemplateType = "application_received"
	TemplateApplicationApproved TemplateType = "application_approved"
	TemplateApplicationRejected TemplateType = "application_rejected"
)

// Mailer sends one categorized transactional email. Callers treat failures
// as best-effort: log and move on, never fail the primary operation.
type Mailer interface {
	Send(ctx context.Context, tmpl TemplateType, toEmail, toName string, vars map[string]string) error
}
