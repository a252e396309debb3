package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

func (r *CategoryRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, translate(err, "categories")
}

func (r *CategoryRepo) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, translate(err, "category")
	}
	return &category, nil
}

func (r *CategoryRepo) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, translate(err, "category")
	}
	return &category, nil
}

func (r *CategoryRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	return translate(r.db.WithContext(ctx).Create(category).Error, "category")
}

func (r *CategoryRepo) SaveCategory(ctx context.Context, category *models.Category) error {
	return translate(r.db.WithContext(ctx).Save(category).Error, "category")
}

// DeleteCategory removes the row; posts.category_id is set to NULL by the FK.
func (r *CategoryRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error, "category")
}
