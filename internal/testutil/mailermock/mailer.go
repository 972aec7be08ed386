package mailermock

import (
	"context"
	"sync"

	"loanhub-backend/internal/mailer"
)

var _ mailer.Mailer = (*Mailer)(nil)

// Sent records one Send call.
type Sent struct {
	Template mailer.TemplateType
	ToEmail  string
	ToName   string
	Vars     map[string]string
}

// Mailer records sends and optionally fails them, for exercising the
// best-effort notification paths.
type Mailer struct {
	mu     sync.Mutex
	SendFn func(ctx context.Context, tmpl mailer.TemplateType, toEmail, toName string, vars map[string]string) error
	sent   []Sent
}

func (m *Mailer) Send(ctx context.Context, tmpl mailer.TemplateType, toEmail, toName string, vars map[string]string) error {
	m.mu.Lock()
	m.sent = append(m.sent, Sent{Template: tmpl, ToEmail: toEmail, ToName: toName, Vars: vars})
	m.mu.Unlock()
	if m.SendFn != nil {
		return m.SendFn(ctx, tmpl, toEmail, toName, vars)
	}
	return nil
}

func (m *Mailer) Sent() []Sent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Sent, len(m.sent))
	copy(out, m.sent)
	return out
}

// SentTemplates lists just the template types, in call order.
func (m *Mailer) SentTemplates() []mailer.TemplateType {
	var out []mailer.TemplateType
	for _, s := range m.Sent() {
		out = append(out, s.Template)
	}
	return out
}
