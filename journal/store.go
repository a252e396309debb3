package journal

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/models"
)

// Find methods report a missing row with an error for which errs.IsNotFound is true.

type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) error
	// SavePost writes every column of post. Associations are not touched.
	SavePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uuid.UUID) error
	// FindPostByID reads from the primary with tags and category loaded.
	FindPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	FindPublishedPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	ListPublishedPosts(ctx context.Context, limit int) ([]models.Post, error)
	ListPublishedPostsByCategorySlug(ctx context.Context, categorySlug string) ([]models.Post, error)
	ListRelatedPosts(ctx context.Context, postID, categoryID uuid.UUID, limit int) ([]models.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	ListAllPosts(ctx context.Context) ([]models.Post, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	// ReplacePostTags deletes every association of postID and inserts tagIDs,
	// atomically: on error the previous set is still in place.
	ReplacePostTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error
	// ClearDraftPublishedAt nulls published_at on drafts that carry one and
	// returns them as they were before the fix.
	ClearDraftPublishedAt(ctx context.Context) ([]models.Post, error)
}

type TagStore interface {
	FindTagBySlug(ctx context.Context, slug string) (*models.Tag, error)
	CreateTag(ctx context.Context, tag *models.Tag) error
	ListTags(ctx context.Context) ([]models.Tag, error)
}

type CategoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	SaveCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}
