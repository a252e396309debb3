package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/database"
	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"github.com/rpupo63/ambitious-journal-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	clientThanks      = "Thank you for your consultation request. We'll be in touch within 24 hours!"
	brandThanks       = "Thank you for your partnership inquiry. We'll review and respond shortly!"
	emailFailedNotice = "Message saved but email notification failed"
)

type ContactStore interface {
	CreateSubmission(ctx context.Context, submission *models.ContactSubmission) error
	ListSubmissions(ctx context.Context, filter database.ContactFilter) ([]models.ContactSubmission, error)
	UpdateSubmissionStatus(ctx context.Context, id uuid.UUID, status models.SubmissionStatus, now time.Time) (*models.ContactSubmission, error)
	SubmissionStats(ctx context.Context) (models.ContactStats, error)
}

type EmailSender interface {
	SendEmail(ctx context.Context, subject, html, replyTo string, recipients []string) (string, error)
}

type ContactNotifier interface {
	NotifyContact(ctx context.Context, submission models.ContactSubmission) error
}

type contactHandler struct {
	responder  Responder
	logger     zerolog.Logger
	contacts   ContactStore
	email      EmailSender
	sms        ContactNotifier
	recipients []string
	now        func() time.Time
}

func newContactHandler(contacts ContactStore, email EmailSender, sms ContactNotifier, recipients []string) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		contacts:   contacts,
		email:      email,
		sms:        sms,
		recipients: recipients,
		now:        time.Now,
	}
}

type contactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Message string  `json:"message"`
	Service *string `json:"service"`
	Type    string  `json:"type"`
}

type contactResponse struct {
	Success      bool      `json:"success"`
	Message      string    `json:"message"`
	SubmissionID uuid.UUID `json:"submissionId"`
	EmailID      string    `json:"emailId,omitempty"`
}

type statusRequest struct {
	Status models.SubmissionStatus `json:"status"`
}

func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// submission validates the form and builds the row to store.
func (req contactRequest) submission() (*models.ContactSubmission, error) {
	formType := models.FormType(strings.ToLower(strings.TrimSpace(req.Type)))
	if formType == "" {
		formType = models.FormTypeBrand
	}
	if !formType.Valid() {
		return nil, errs.NewInvalidFieldError("type", "must be brand or client")
	}

	s := &models.ContactSubmission{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Message:  strings.TrimSpace(req.Message),
		Phone:    optionalString(req.Phone),
		Service:  optionalString(req.Service),
		FormType: formType,
		Status:   models.SubmissionStatusNew,
	}
	required := []struct{ field, value string }{
		{"name", s.Name}, {"email", s.Email}, {"message", s.Message},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, errs.NewBadRequestErrorWithField("Missing required fields", f.field, "name, email and message are required")
		}
	}

	if formType == models.FormTypeClient {
		service := "General Inquiry"
		if s.Service != nil {
			service = *s.Service
		}
		s.Subject = "Client Consultation: " + service
	} else {
		s.Subject = "Brand Partnership Inquiry"
	}
	return s, nil
}

// submit stores the form, then sends the email and the SMS concurrently.
// Only a storage failure fails the request.
func (h contactHandler) submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		submission, err := req.submission()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.contacts.CreateSubmission(r.Context(), submission); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "contact submission", err))
			return
		}

		var (
			emailID  string
			emailErr error
			g        errgroup.Group
		)
		g.Go(func() error {
			emailID, emailErr = h.sendEmail(r.Context(), *submission)
			return nil
		})
		if h.sms != nil {
			g.Go(func() error {
				if err := h.sms.NotifyContact(r.Context(), *submission); err != nil {
					h.logger.Warn().Err(err).Str("submissionId", submission.ID.String()).Msg("Failed to send contact SMS")
				}
				return nil
			})
		}
		_ = g.Wait()

		response := contactResponse{
			Success:      true,
			Message:      brandThanks,
			SubmissionID: submission.ID,
			EmailID:      emailID,
		}
		if submission.FormType == models.FormTypeClient {
			response.Message = clientThanks
		}
		if emailErr != nil {
			h.logger.Error().Err(emailErr).Str("submissionId", submission.ID.String()).Msg("Failed to send contact email")
			response.Message = emailFailedNotice
		}
		h.responder.WriteJSON(w, response)
	}
}

func (h contactHandler) sendEmail(ctx context.Context, submission models.ContactSubmission) (string, error) {
	if h.email == nil || len(h.recipients) == 0 {
		return "", errs.NewConfigError("RESEND_API_KEY", nil)
	}
	subject, html, err := services.ContactEmail(submission)
	if err != nil {
		return "", err
	}
	return h.email.SendEmail(ctx, subject, html, submission.Email, h.recipients)
}

func (h contactHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filter := database.ContactFilter{
			FormType: models.FormType(query.Get("form_type")),
			Status:   models.SubmissionStatus(query.Get("status")),
		}
		if filter.FormType != "" && !filter.FormType.Valid() {
			h.responder.WriteError(w, errs.NewInvalidFieldError("form_type", "must be brand or client"))
			return
		}
		if filter.Status != "" && !filter.Status.Valid() {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be new, read, replied or archived"))
			return
		}

		submissions, err := h.contacts.ListSubmissions(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list", "contact submissions", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"submissions": submissions})
	}
}

func (h contactHandler) stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.contacts.SubmissionStats(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("count", "contact submissions", err))
			return
		}
		h.responder.WriteJSON(w, stats)
	}
}

func (h contactHandler) updateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID, err := uuidParam(r, "submissionID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req statusRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !req.Status.Valid() {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be new, read, replied or archived"))
			return
		}

		submission, err := h.contacts.UpdateSubmissionStatus(r.Context(), submissionID, req.Status, h.now())
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "contact submission", err))
			return
		}
		h.responder.WriteJSON(w, submission)
	}
}
