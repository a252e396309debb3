package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

func (r *PostRepo) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Category").Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Order("tags.name ASC")
	})
}

func (r *PostRepo) published(ctx context.Context) *gorm.DB {
	return r.withRelations(ctx).
		Where("posts.status = ?", models.PostStatusPublished).
		Order("posts.published_at DESC")
}

// CreatePost inserts the post row only; tags go through ReplacePostTags.
func (r *PostRepo) CreatePost(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error, "post")
}

// SavePost writes every column except views, which only increment_views may
// change; a view recorded while the post was being edited must survive.
func (r *PostRepo) SavePost(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations, "views").Save(post).Error, "post")
}

// DeletePost hard-deletes the post. post_tags rows go with it through the FK cascade.
func (r *PostRepo) DeletePost(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id).Error, "post")
}

// FindPostByID always reads from the primary so a reload right after a write sees it.
func (r *PostRepo) FindPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.withRelations(ctx).Clauses(dbresolver.Write).First(&post, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "post")
	}
	return &post, nil
}

func (r *PostRepo) FindPublishedPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.withRelations(ctx).
		Where("slug = ? AND status = ?", slug, models.PostStatusPublished).
		First(&post).Error
	if err != nil {
		return nil, translate(err, "post")
	}
	return &post, nil
}

// ListPublishedPosts returns the feed, newest first. A non-positive limit returns everything.
func (r *PostRepo) ListPublishedPosts(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	query := r.published(ctx)
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&posts).Error
	return posts, translate(err, "posts")
}

func (r *PostRepo) ListPublishedPostsByCategorySlug(ctx context.Context, categorySlug string) ([]models.Post, error) {
	var posts []models.Post
	err := r.published(ctx).
		Select("posts.*").
		Joins("JOIN categories ON categories.id = posts.category_id").
		Where("categories.slug = ?", categorySlug).
		Find(&posts).Error
	return posts, translate(err, "posts")
}

func (r *PostRepo) ListRelatedPosts(ctx context.Context, postID, categoryID uuid.UUID, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.published(ctx).
		Where("posts.category_id = ? AND posts.id <> ?", categoryID, postID).
		Limit(limit).
		Find(&posts).Error
	return posts, translate(err, "posts")
}

func (r *PostRepo) ListPostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, translate(err, "posts")
}

// ListAllPosts loads only the columns the maintenance listing shows.
func (r *PostRepo) ListAllPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Select("id", "title", "slug", "status", "published_at", "created_at").
		Order("created_at DESC").
		Find(&posts).Error
	return posts, translate(err, "posts")
}

// IncrementViews calls the increment_views function created by the schema generator.
func (r *PostRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Exec("SELECT increment_views(?)", id).Error, "post")
}

func (r *PostRepo) ReplacePostTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		rows := make([]models.PostTag, len(tagIDs))
		for i, tagID := range tagIDs {
			rows[i] = models.PostTag{PostID: postID, TagID: tagID}
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return errs.NewTransactionFailedError("replace post tags", translate(err, "post tags"))
	}
	return nil
}

func (r *PostRepo) ClearDraftPublishedAt(ctx context.Context) ([]models.Post, error) {
	var broken []models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "title", "slug", "status", "published_at", "created_at").
			Where("status = ? AND published_at IS NOT NULL", models.PostStatusDraft).
			Find(&broken).Error
		if err != nil || len(broken) == 0 {
			return err
		}
		ids := make([]uuid.UUID, len(broken))
		for i, post := range broken {
			ids[i] = post.ID
		}
		return tx.Model(&models.Post{}).Where("id IN ?", ids).Update("published_at", nil).Error
	})
	if err != nil {
		return nil, errs.NewTransactionFailedError("clear draft published_at", translate(err, "posts"))
	}
	return broken, nil
}
