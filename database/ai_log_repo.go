package database

import (
	"context"

	"github.com/rpupo63/ambitious-journal-backend/models"
	"gorm.io/gorm"
)

type AILogRepo struct {
	db *gorm.DB
}

func NewAILogRepo(db *gorm.DB) *AILogRepo {
	return &AILogRepo{db}
}

func (r *AILogRepo) CreateAILog(ctx context.Context, entry *models.AILog) error {
	return translate(r.db.WithContext(ctx).Create(entry).Error, "ai log")
}

// ListAILogs returns the most recent calls for a feature, or for every feature when feature is empty.
func (r *AILogRepo) ListAILogs(ctx context.Context, feature string, limit int) ([]models.AILog, error) {
	var entries []models.AILog
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if feature != "" {
		query = query.Where("feature = ?", feature)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&entries).Error
	return entries, translate(err, "ai logs")
}
