package models

import (
	"time"

	"github.com/google/uuid"
)

type FormType string

const (
	FormTypeBrand  FormType = "brand"
	FormTypeClient FormType = "client"
)

func (f FormType) Valid() bool {
	return f == FormTypeBrand || f == FormTypeClient
}

type SubmissionStatus string

const (
	SubmissionStatusNew      SubmissionStatus = "new"
	SubmissionStatusRead     SubmissionStatus = "read"
	SubmissionStatusReplied  SubmissionStatus = "replied"
	SubmissionStatusArchived SubmissionStatus = "archived"
)

var SubmissionStatuses = []SubmissionStatus{
	SubmissionStatusNew,
	SubmissionStatusRead,
	SubmissionStatusReplied,
	SubmissionStatusArchived,
}

func (s SubmissionStatus) Valid() bool {
	for _, status := range SubmissionStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ContactSubmission is one message sent through the site's contact forms.
type ContactSubmission struct {
	ID        uuid.UUID        `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name      string           `json:"name" db:"name" gorm:"column:name;type:text;not null"`
	Email     string           `json:"email" db:"email" gorm:"column:email;type:text;not null"`
	Subject   string           `json:"subject" db:"subject" gorm:"column:subject;type:text;not null"`
	Message   string           `json:"message" db:"message" gorm:"column:message;type:text;not null"`
	Phone     *string          `json:"phone" db:"phone" gorm:"column:phone;type:text"`
	FormType  FormType         `json:"form_type" db:"form_type" gorm:"column:form_type;type:text;not null;default:brand;index:idx_contact_submissions_form_type"`
	Service   *string          `json:"service" db:"service" gorm:"column:service;type:text"`
	Status    SubmissionStatus `json:"status" db:"status" gorm:"column:status;type:text;not null;default:new;index:idx_contact_submissions_status"`
	ReadAt    *time.Time       `json:"read_at" db:"read_at" gorm:"column:read_at;type:timestamptz"`
	CreatedAt time.Time        `json:"created_at" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (ContactSubmission) TableName() string {
	return "contact_submissions"
}

// ApplyStatus moves the submission to status. The first move to read stamps
// ReadAt; later moves never clear or overwrite it.
func (s *ContactSubmission) ApplyStatus(status SubmissionStatus, now time.Time) {
	s.Status = status
	if status == SubmissionStatusRead && s.ReadAt == nil {
		s.ReadAt = &now
	}
}

// ContactStats summarises the inbox for the admin dashboard.
type ContactStats struct {
	Total  int64 `json:"total"`
	New    int64 `json:"new"`
	Brand  int64 `json:"brand"`
	Client int64 `json:"client"`
}
