package services

import (
	"context"
	"fmt"

	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// messageCreator is the piece of the Twilio REST client SMSNotifier uses.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSNotifier texts the site owner about new client consultation requests.
type SMSNotifier struct {
	messages messageCreator
	from     string
	to       string
}

func NewSMSNotifier(accountSID, authToken, from, to string) (*SMSNotifier, error) {
	switch {
	case accountSID == "":
		return nil, errs.NewEnvironmentVariableError("TWILIO_ACCOUNT_SID")
	case authToken == "":
		return nil, errs.NewEnvironmentVariableError("TWILIO_AUTH_TOKEN")
	case from == "":
		return nil, errs.NewEnvironmentVariableError("TWILIO_FROM_NUMBER")
	case to == "":
		return nil, errs.NewEnvironmentVariableError("TWILIO_NOTIFY_TO")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMSNotifier{messages: client.Api, from: from, to: to}, nil
}

func contactSMSBody(submission models.ContactSubmission) string {
	body := fmt.Sprintf("New consultation request from %s (%s)", submission.Name, submission.Email)
	if submission.Service != nil && *submission.Service != "" {
		body += ": " + *submission.Service
	}
	if submission.Phone != nil && *submission.Phone != "" {
		body += ". Phone " + *submission.Phone
	}
	return body
}

// NotifyContact texts the owner. Only client consultations are worth a text;
// other form types return without sending.
func (n *SMSNotifier) NotifyContact(ctx context.Context, submission models.ContactSubmission) error {
	if submission.FormType != models.FormTypeClient {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(contactSMSBody(submission))

	message, err := n.messages.CreateMessage(params)
	if err != nil {
		return errs.NewServiceUnreachableError("twilio", err)
	}
	if message != nil && message.Sid != nil {
		log.Info().Str("sid", *message.Sid).Msg("Sent contact SMS")
	}
	return nil
}
