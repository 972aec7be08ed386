package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const mailerSendAPIURL = "https://api.mailersend.com/v1/email"

var defaultSubjects = map[TemplateType]string{
	TemplateWelcome:             "Welcome to LoanHub",
	TemplateEmailVerification:   "Verify Your Email Address",
	TemplatePasswordReset:       "Reset Your Password",
	TemplateApplicationReceived: "We Received Your Loan Application",
	TemplateApplicationApproved: "Your Loan Application Was Approved",
	TemplateApplicationRejected: "Update on Your Loan Application",
}

// MailerSendService implements Mailer against the MailerSend HTTP API,
// mapping each TemplateType to a provider template id.
type MailerSendService struct {
	apiKey      string
	fromEmail   string
	fromName    string
	templateIDs map[TemplateType]string
	client      *http.Client
	logger      *zap.Logger
}

func NewMailerSendService(apiKey, fromEmail, fromName string, templateIDs map[TemplateType]string, logger *zap.Logger) *MailerSendService {
	return &MailerSendService{
		apiKey:      apiKey,
		fromEmail:   fromEmail,
		fromName:    fromName,
		templateIDs: templateIDs,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.Named("MailerSendService"),
	}
}

type mailerSendRequest struct {
	From            fromEmail              `json:"from"`
	To              []toEmail              `json:"to"`
	Subject         string                 `json:"subject"`
	TemplateID      string                 `json:"template_id,omitempty"`
	Personalization []personalizationEntry `json:"personalization,omitempty"`
}

type fromEmail struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type toEmail struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type personalizationEntry struct {
	Email string            `json:"email"`
	Data  map[string]string `json:"data"`
}

func (s *MailerSendService) Send(ctx context.Context, tmpl TemplateType, toEmailAddr, toName string, vars map[string]string) error {
	s.logger.Info("sending transactional email",
		zap.String("template", string(tmpl)),
		zap.String("toEmail", toEmailAddr))

	data := map[string]string{"name": toName}
	for k, v := range vars {
		data[k] = v
	}

	requestPayload := mailerSendRequest{
		From: fromEmail{
			Email: s.fromEmail,
			Name:  s.fromName,
		},
		To: []toEmail{
			{Email: toEmailAddr, Name: toName},
		},
		Subject:    defaultSubjects[tmpl],
		TemplateID: s.templateIDs[tmpl],
		Personalization: []personalizationEntry{
			{Email: toEmailAddr, Data: data},
		},
	}

	payloadBytes, err := json.Marshal(requestPayload)
	if err != nil {
		return fmt.Errorf("marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mailerSendAPIURL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("mail provider request failed", zap.Error(err))
		return fmt.Errorf("send request to MailerSend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		s.logger.Error("mail provider rejected request",
			zap.Int("statusCode", resp.StatusCode),
			zap.String("template", string(tmpl)))
		return fmt.Errorf("MailerSend API request failed with status code %d", resp.StatusCode)
	}

	s.logger.Info("transactional email accepted",
		zap.String("toEmail", toEmailAddr),
		zap.String("messageID", resp.Header.Get("X-Message-Id")))
	return nil
}
