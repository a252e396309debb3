package database

import (
	"context"

	"github.com/rpupo63/ambitious-journal-backend/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindTagBySlug reads from the primary: it is the retry path after a lost insert race.
func (r *TagRepo) FindTagBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).Where("slug = ?", slug).First(&tag).Error
	if err != nil {
		return nil, translate(err, "tag")
	}
	return &tag, nil
}

func (r *TagRepo) CreateTag(ctx context.Context, tag *models.Tag) error {
	return translate(r.db.WithContext(ctx).Create(tag).Error, "tag")
}

// ListTags returns all tags ordered by name
func (r *TagRepo) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, translate(err, "tags")
}
