package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContactFilter narrows the submission list. Empty fields match everything.
type ContactFilter struct {
	FormType models.FormType
	Status   models.SubmissionStatus
}

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db}
}

func (r *ContactRepo) CreateSubmission(ctx context.Context, submission *models.ContactSubmission) error {
	return translate(r.db.WithContext(ctx).Create(submission).Error, "contact submission")
}

// ListSubmissions returns submissions newest first
func (r *ContactRepo) ListSubmissions(ctx context.Context, filter ContactFilter) ([]models.ContactSubmission, error) {
	var submissions []models.ContactSubmission
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.FormType != "" {
		query = query.Where("form_type = ?", filter.FormType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	err := query.Find(&submissions).Error
	return submissions, translate(err, "contact submissions")
}

// UpdateSubmissionStatus applies status under a row lock so concurrent reads
// of the same message stamp read_at once.
func (r *ContactRepo) UpdateSubmissionStatus(ctx context.Context, id uuid.UUID, status models.SubmissionStatus, now time.Time) (*models.ContactSubmission, error) {
	var submission models.ContactSubmission
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&submission, "id = ?", id).Error
		if err != nil {
			return err
		}
		submission.ApplyStatus(status, now)
		return tx.Model(&submission).Select("status", "read_at").Updates(&submission).Error
	})
	if err != nil {
		return nil, translate(err, "contact submission")
	}
	return &submission, nil
}

func (r *ContactRepo) SubmissionStats(ctx context.Context) (models.ContactStats, error) {
	var stats models.ContactStats
	err := r.db.WithContext(ctx).
		Model(&models.ContactSubmission{}).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = ?) AS "new",
			COUNT(*) FILTER (WHERE form_type = ?) AS brand,
			COUNT(*) FILTER (WHERE form_type = ?) AS client`,
			models.SubmissionStatusNew, models.FormTypeBrand, models.FormTypeClient).
		Scan(&stats).Error
	return stats, translate(err, "contact submissions")
}
