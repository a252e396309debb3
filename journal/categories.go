package journal

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/models"
)

type CategoryInput struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
}

type CategoryUpdate struct {
	Name        Field[string]  `json:"name"`
	Slug        Field[string]  `json:"slug"`
	Description Field[*string] `json:"description"`
	Color       Field[string]  `json:"color"`
}

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, errs.NewStorageError("list", "categories", err)
	}
	return categories, nil
}

func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errs.NewValidationError("name", "category name is required")
	}
	slug, err := deriveSlug(in.Slug, in.Name)
	if err != nil {
		return nil, err
	}
	color := in.Color
	if strings.TrimSpace(color) == "" {
		color = models.DefaultCategoryColor
	}

	category := &models.Category{
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		Color:       color,
	}
	if err := s.categories.CreateCategory(ctx, category); err != nil {
		return nil, errs.NewStorageError("create", "category", err)
	}
	return category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, upd CategoryUpdate) (*models.Category, error) {
	if upd.Name.Set && strings.TrimSpace(upd.Name.Value) == "" {
		return nil, errs.NewValidationError("name", "category name is required")
	}

	category, err := s.categories.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, errs.NewStorageError("find", "category", err)
	}
	upd.Name.apply(&category.Name)
	upd.Description.apply(&category.Description)
	if upd.Color.Set && strings.TrimSpace(upd.Color.Value) != "" {
		category.Color = upd.Color.Value
	}
	if upd.Slug.Set {
		slug, err := deriveSlug(upd.Slug.Value, category.Name)
		if err != nil {
			return nil, err
		}
		category.Slug = slug
	}

	if err := s.categories.SaveCategory(ctx, category); err != nil {
		return nil, errs.NewStorageError("update", "category", err)
	}
	return category, nil
}

// DeleteCategory removes the category; its posts become uncategorized.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindCategoryByID(ctx, id); err != nil {
		return errs.NewStorageError("find", "category", err)
	}
	if err := s.categories.DeleteCategory(ctx, id); err != nil {
		return errs.NewStorageError("delete", "category", err)
	}
	return nil
}
