package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

func strPtr(s string) *string { return &s }

func clientSubmission() models.ContactSubmission {
	return models.ContactSubmission{
		ID:        uuid.MustParse("6f1c2e0a-8d7b-4f41-9a55-2d0c8f5e9b11"),
		Name:      "Jordan <script>",
		Email:     "jordan@example.com",
		Subject:   "Client Consultation: Wardrobe Audit",
		Message:   "I want to look sharper & more confident.",
		Phone:     strPtr("+15550100"),
		FormType:  models.FormTypeClient,
		Service:   strPtr("Wardrobe Audit"),
		Status:    models.SubmissionStatusNew,
		CreatedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestResendSendEmail(t *testing.T) {
	var got ResendEmailRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer server.Close()

	client, err := NewResendClient("re_test", "Journal <hello@example.com>", WithResendBaseURL(server.URL))
	require.NoError(t, err)

	id, err := client.SendEmail(context.Background(), "[TAG] Hi", "<p>hi</p>", "jordan@example.com", []string{"owner@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "email_123", id)
	assert.Equal(t, "Journal <hello@example.com>", got.From)
	assert.Equal(t, []string{"owner@example.com"}, got.To)
	assert.Equal(t, "[TAG] Hi", got.Subject)
	assert.Equal(t, "jordan@example.com", got.ReplyTo)
}

func TestResendErrorIsServiceUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Invalid from address"}`))
	}))
	defer server.Close()

	client, err := NewResendClient("re_test", "hello@example.com", WithResendBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.SendEmail(context.Background(), "s", "h", "", []string{"owner@example.com"})
	require.Error(t, err)
	assert.True(t, errs.IsServiceUnreachableError(err))
	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.GetFullError(), "Invalid from address")
}

func TestResendRequiresConfigAndRecipients(t *testing.T) {
	_, err := NewResendClient("", "hello@example.com")
	assert.True(t, errs.IsEnvironmentVariableError(err))

	client, err := NewResendClient("key", "hello@example.com")
	require.NoError(t, err)
	_, err = client.SendEmail(context.Background(), "s", "h", "", nil)
	assert.True(t, errs.IsMissingRequiredFieldError(err))
}

func TestContactEmailEscapesAndTags(t *testing.T) {
	subject, html, err := ContactEmail(clientSubmission())
	require.NoError(t, err)
	assert.Equal(t, "[TAG] Client Consultation: Wardrobe Audit", subject)
	assert.Contains(t, html, "New Client Consultation Request")
	assert.Contains(t, html, "Jordan &lt;script&gt;")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "Wardrobe Audit")
	assert.Contains(t, html, "+15550100")

	brand := clientSubmission()
	brand.FormType = models.FormTypeBrand
	brand.Subject = "Brand Partnership Inquiry"
	subject, html, err = ContactEmail(brand)
	require.NoError(t, err)
	assert.Equal(t, "[TAG] Brand Partnership Inquiry", subject)
	assert.Contains(t, html, "New Brand Partnership Inquiry")
	assert.NotContains(t, html, "Service Interest")
}

type fakeMessages struct {
	params []*twilioApi.CreateMessageParams
	err    error
}

func (f *fakeMessages) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func TestSMSNotifierTextsClientsOnly(t *testing.T) {
	messages := &fakeMessages{}
	notifier := &SMSNotifier{messages: messages, from: "+15550001", to: "+15550002"}
	ctx := context.Background()

	require.NoError(t, notifier.NotifyContact(ctx, clientSubmission()))
	require.Len(t, messages.params, 1)
	sent := messages.params[0]
	assert.Equal(t, "+15550002", *sent.To)
	assert.Equal(t, "+15550001", *sent.From)
	assert.Equal(t, "New consultation request from Jordan <script> (jordan@example.com): Wardrobe Audit. Phone +15550100", *sent.Body)

	brand := clientSubmission()
	brand.FormType = models.FormTypeBrand
	require.NoError(t, notifier.NotifyContact(ctx, brand))
	assert.Len(t, messages.params, 1)

	messages.err = errors.New("twilio down")
	err := notifier.NotifyContact(ctx, clientSubmission())
	assert.True(t, errs.IsServiceUnreachableError(err))
}

func TestNewSMSNotifierRequiresConfig(t *testing.T) {
	_, err := NewSMSNotifier("AC1", "token", "", "+1555")
	assert.True(t, errs.IsEnvironmentVariableError(err))
}
