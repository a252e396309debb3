package services

import (
	"bytes"
	"html/template"
	"time"

	"github.com/rpupo63/ambitious-journal-backend/models"
)

const contactEmailSubjectPrefix = "[TAG] "

var contactEmailTemplate = template.Must(template.New("contact").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #D4AF37; border-bottom: 2px solid #D4AF37; padding-bottom: 10px;">{{.Heading}}</h2>
  <div style="background-color: #f9f9f9; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p style="margin: 10px 0;"><strong>{{.NameLabel}}:</strong> {{.Name}}</p>
    <p style="margin: 10px 0;"><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
    {{- if .Phone}}
    <p style="margin: 10px 0;"><strong>Phone:</strong> <a href="tel:{{.Phone}}">{{.Phone}}</a></p>
    {{- end}}
    {{- if .Service}}
    <p style="margin: 10px 0;"><strong>Service Interest:</strong> {{.Service}}</p>
    {{- end}}
  </div>
  <div style="margin: 20px 0;">
    <h3 style="color: #333;">{{.MessageLabel}}:</h3>
    <p style="white-space: pre-wrap; background-color: #f9f9f9; padding: 15px; border-left: 4px solid #D4AF37; line-height: 1.6;">{{.Message}}</p>
  </div>
  <hr style="border: none; border-top: 1px solid #ddd; margin: 30px 0;">
  <p style="color: #666; font-size: 12px;">
    <strong>Submission ID:</strong> {{.SubmissionID}}<br>
    <strong>Received:</strong> {{.Received}}<br>
    <strong>Type:</strong> {{.TypeLabel}}
  </p>
</div>`))

type contactEmailData struct {
	Heading      string
	NameLabel    string
	MessageLabel string
	TypeLabel    string
	Name         string
	Email        string
	Phone        string
	Service      string
	Message      string
	SubmissionID string
	Received     string
}

// ContactEmail renders the owner notification for a saved submission. Every
// user-supplied field is HTML-escaped.
func ContactEmail(submission models.ContactSubmission) (subject, html string, err error) {
	data := contactEmailData{
		Heading:      "New Brand Partnership Inquiry",
		NameLabel:    "Company/Contact",
		MessageLabel: "Partnership Proposal",
		TypeLabel:    "Brand Partnership",
		Name:         submission.Name,
		Email:        submission.Email,
		Message:      submission.Message,
		SubmissionID: submission.ID.String(),
		Received:     submission.CreatedAt.Format(time.RFC1123),
	}
	if submission.Phone != nil {
		data.Phone = *submission.Phone
	}
	if submission.FormType == models.FormTypeClient {
		data.Heading = "New Client Consultation Request"
		data.NameLabel = "Name"
		data.MessageLabel = "Client's Goals"
		data.TypeLabel = "Client Consultation"
		if submission.Service != nil {
			data.Service = *submission.Service
		}
	}

	var buf bytes.Buffer
	if err := contactEmailTemplate.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return contactEmailSubjectPrefix + submission.Subject, buf.String(), nil
}
