package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rs/zerolog/log"
)

const defaultResendBaseURL = "https://api.resend.com"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// ResendClient sends transactional email through the Resend REST API.
type ResendClient struct {
	apiKey     string
	from       string
	baseURL    string
	httpClient *http.Client
}

type ResendOption func(*ResendClient)

// WithResendBaseURL points the client at another host, e.g. an httptest server.
func WithResendBaseURL(baseURL string) ResendOption {
	return func(c *ResendClient) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// NewResendClient requires RESEND_API_KEY and RESEND_FROM_EMAIL values.
func NewResendClient(apiKey, from string, opts ...ResendOption) (*ResendClient, error) {
	if apiKey == "" {
		return nil, errs.NewEnvironmentVariableError("RESEND_API_KEY")
	}
	if from == "" {
		return nil, errs.NewEnvironmentVariableError("RESEND_FROM_EMAIL")
	}
	c := &ResendClient{
		apiKey:     apiKey,
		from:       from,
		baseURL:    defaultResendBaseURL,
		httpClient: newHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SendEmail sends an HTML email and returns the Resend message ID.
// replyTo may be empty.
func (c *ResendClient) SendEmail(ctx context.Context, subject, html, replyTo string, recipients []string) (string, error) {
	if len(recipients) == 0 {
		return "", errs.NewMissingRequiredFieldError("recipients")
	}

	payload := ResendEmailRequest{
		From:    c.from,
		To:      recipients,
		Subject: subject,
		Html:    html,
		ReplyTo: replyTo,
	}

	var emailResponse ResendEmailResponse
	err := doJSON(ctx, c.httpClient, "Resend", http.MethodPost, c.baseURL+"/emails",
		map[string]string{"Authorization": "Bearer " + c.apiKey},
		payload, &emailResponse, resendErrorMessage)
	if err != nil {
		return "", errs.NewServiceUnreachableError("resend", err)
	}

	log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	return emailResponse.ID, nil
}

func resendErrorMessage(body []byte) string {
	var errorResp ResendErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return ""
	}
	return errorResp.Message
}
