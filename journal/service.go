package journal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultRelatedLimit is how many related posts are returned when the caller gives no limit.
const DefaultRelatedLimit = 3

// PostInput is the authoring payload for a new post.
type PostInput struct {
	Title            string            `json:"title"`
	Slug             string            `json:"slug"`
	Excerpt          *string           `json:"excerpt"`
	Content          string            `json:"content"`
	FeaturedImage    *string           `json:"featured_image"`
	FeaturedImageAlt *string           `json:"featured_image_alt"`
	Status           models.PostStatus `json:"status"`
	ScheduledFor     *time.Time        `json:"scheduled_for"`
	CategoryID       *uuid.UUID        `json:"category_id"`
	SEOTitle         *string           `json:"seo_title"`
	SEODescription   *string           `json:"seo_description"`
	SEOKeywords      []string          `json:"seo_keywords"`
	Tags             []uuid.UUID       `json:"tags"`
	TagNames         []string          `json:"tag_names"`
}

// PostUpdate changes only the fields that are Set. Nullable fields are
// cleared by a Set field holding nil.
type PostUpdate struct {
	Title            Field[string]            `json:"title"`
	Slug             Field[string]            `json:"slug"`
	Excerpt          Field[*string]           `json:"excerpt"`
	Content          Field[string]            `json:"content"`
	FeaturedImage    Field[*string]           `json:"featured_image"`
	FeaturedImageAlt Field[*string]           `json:"featured_image_alt"`
	Status           Field[models.PostStatus] `json:"status"`
	ScheduledFor     Field[*time.Time]        `json:"scheduled_for"`
	CategoryID       Field[*uuid.UUID]        `json:"category_id"`
	SEOTitle         Field[*string]           `json:"seo_title"`
	SEODescription   Field[*string]           `json:"seo_description"`
	SEOKeywords      Field[[]string]          `json:"seo_keywords"`
	Tags             Field[[]uuid.UUID]       `json:"tags"`
	TagNames         Field[[]string]          `json:"tag_names"`
}

// PublishHook is told about a post whose published_at just went from null to set.
type PublishHook func(post models.Post)

type Service struct {
	posts      PostStore
	tags       TagStore
	categories CategoryStore
	now        func() time.Time
	onPublish  PublishHook
	logger     zerolog.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithPublishHook(hook PublishHook) Option {
	return func(s *Service) {
		s.onPublish = hook
	}
}

func NewService(posts PostStore, tags TagStore, categories CategoryStore, opts ...Option) *Service {
	s := &Service{
		posts:      posts,
		tags:       tags,
		categories: categories,
		now:        time.Now,
		logger:     log.With().Str("service", "journal").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validateBody(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return errs.NewValidationError("title", "title is required")
	}
	if strings.TrimSpace(content) == "" {
		return errs.NewValidationError("content", "content is required")
	}
	return nil
}

func validateStatus(status models.PostStatus) error {
	if status.Valid() {
		return nil
	}
	allowed := make([]string, len(models.PostStatuses))
	for i, s := range models.PostStatuses {
		allowed[i] = string(s)
	}
	return errs.NewInvalidStatusError("status", string(status), allowed)
}

// deriveSlug normalizes an explicit slug, or derives one from the title when none is given.
func deriveSlug(override, title string) (string, error) {
	source, field := override, "slug"
	if strings.TrimSpace(override) == "" {
		source, field = title, "title"
	}
	slug := GenerateSlug(source)
	if slug == "" {
		return "", errs.NewDerivationError(field, source)
	}
	return slug, nil
}

// CreatePost validates and derives every computed field before the first
// write. Tags, including any created by name, are reconciled after the row
// exists; a failure there returns the saved post together with a tag
// reconciliation error.
func (s *Service) CreatePost(ctx context.Context, authorID string, in PostInput) (*models.Post, error) {
	if err := validateBody(in.Title, in.Content); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}
	slug, err := deriveSlug(in.Slug, in.Title)
	if err != nil {
		return nil, err
	}
	if err := checkTagNames(in.TagNames); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:            in.Title,
		Slug:             slug,
		Excerpt:          in.Excerpt,
		Content:          in.Content,
		FeaturedImage:    in.FeaturedImage,
		FeaturedImageAlt: in.FeaturedImageAlt,
		Status:           status,
		PublishedAt:      NextPublishedAt(PublishState{}, status, s.now()),
		ScheduledFor:     in.ScheduledFor,
		AuthorID:         authorID,
		CategoryID:       in.CategoryID,
		ReadingTime:      EstimateReadingTime(in.Content),
		SEOTitle:         in.SEOTitle,
		SEODescription:   in.SEODescription,
		SEOKeywords:      in.SEOKeywords,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, errs.NewStorageError("create", "post", err)
	}

	if len(in.Tags) > 0 || len(in.TagNames) > 0 {
		if err := s.reconcileTags(ctx, post.ID, in.Tags, in.TagNames); err != nil {
			return post, err
		}
	}

	saved := s.reload(ctx, post)
	if saved.PublishedAt != nil {
		s.published(*saved)
	}
	return saved, nil
}

// UpdatePost applies the Set fields of upd. published_at is recomputed only
// when status is part of the update.
func (s *Service) UpdatePost(ctx context.Context, id uuid.UUID, upd PostUpdate) (*models.Post, error) {
	if upd.Title.Set && strings.TrimSpace(upd.Title.Value) == "" {
		return nil, errs.NewValidationError("title", "title is required")
	}
	if upd.Content.Set && strings.TrimSpace(upd.Content.Value) == "" {
		return nil, errs.NewValidationError("content", "content is required")
	}
	if upd.Status.Set {
		if err := validateStatus(upd.Status.Value); err != nil {
			return nil, err
		}
	}

	post, err := s.posts.FindPostByID(ctx, id)
	if err != nil {
		return nil, errs.NewStorageError("find", "post", err)
	}
	wasPublished := post.PublishedAt != nil

	upd.Title.apply(&post.Title)
	upd.Excerpt.apply(&post.Excerpt)
	upd.FeaturedImage.apply(&post.FeaturedImage)
	upd.FeaturedImageAlt.apply(&post.FeaturedImageAlt)
	upd.ScheduledFor.apply(&post.ScheduledFor)
	upd.CategoryID.apply(&post.CategoryID)
	upd.SEOTitle.apply(&post.SEOTitle)
	upd.SEODescription.apply(&post.SEODescription)
	if upd.SEOKeywords.Set {
		post.SEOKeywords = upd.SEOKeywords.Value
	}
	if upd.Content.Set {
		post.Content = upd.Content.Value
		post.ReadingTime = EstimateReadingTime(post.Content)
	}
	if upd.Status.Set {
		current := PublishState{Status: post.Status, PublishedAt: post.PublishedAt}
		post.PublishedAt = NextPublishedAt(current, upd.Status.Value, s.now())
		post.Status = upd.Status.Value
	}
	if upd.Slug.Set {
		slug, err := deriveSlug(upd.Slug.Value, post.Title)
		if err != nil {
			return nil, err
		}
		post.Slug = slug
	}
	if err := validateBody(post.Title, post.Content); err != nil {
		return nil, err
	}

	replaceTags := upd.Tags.Set || upd.TagNames.Set
	if err := checkTagNames(upd.TagNames.Value); err != nil {
		return nil, err
	}

	post.Category = nil
	post.Tags = nil
	if err := s.posts.SavePost(ctx, post); err != nil {
		return nil, errs.NewStorageError("update", "post", err)
	}
	if replaceTags {
		if err := s.reconcileTags(ctx, post.ID, upd.Tags.Value, upd.TagNames.Value); err != nil {
			return post, err
		}
	}

	saved := s.reload(ctx, post)
	if !wasPublished && saved.PublishedAt != nil {
		s.published(*saved)
	}
	return saved, nil
}

// reload fetches the post with its associations after a write. The write
// already succeeded, so a failed reload falls back to what was written.
func (s *Service) reload(ctx context.Context, post *models.Post) *models.Post {
	saved, err := s.posts.FindPostByID(ctx, post.ID)
	if err != nil {
		s.logger.Warn().Err(err).Str("postID", post.ID.String()).Msg("Failed to reload post after write")
		return post
	}
	return saved
}

func (s *Service) published(post models.Post) {
	if s.onPublish == nil {
		return
	}
	s.onPublish(post)
}

func (s *Service) DeletePost(ctx context.Context, id uuid.UUID) error {
	if _, err := s.posts.FindPostByID(ctx, id); err != nil {
		return errs.NewStorageError("find", "post", err)
	}
	if err := s.posts.DeletePost(ctx, id); err != nil {
		return errs.NewStorageError("delete", "post", err)
	}
	return nil
}

func (s *Service) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.posts.FindPostByID(ctx, id)
	if err != nil {
		return nil, errs.NewStorageError("find", "post", err)
	}
	return post, nil
}

func (s *Service) GetPublishedPost(ctx context.Context, slug string) (*models.Post, error) {
	post, err := s.posts.FindPublishedPostBySlug(ctx, slug)
	if err != nil {
		return nil, errs.NewStorageError("find", "post", err)
	}
	return post, nil
}

// RecordView bumps the view counter. A failure is logged and swallowed so the
// read path never fails because of it.
func (s *Service) RecordView(ctx context.Context, id uuid.UUID) {
	if err := s.posts.IncrementViews(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("postID", id.String()).Msg("Failed to increment views")
	}
}

func (s *Service) ListPublished(ctx context.Context, limit int) ([]models.Post, error) {
	posts, err := s.posts.ListPublishedPosts(ctx, limit)
	if err != nil {
		return nil, errs.NewStorageError("list", "posts", err)
	}
	return posts, nil
}

func (s *Service) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	posts, err := s.posts.ListPostsByAuthor(ctx, authorID)
	if err != nil {
		return nil, errs.NewStorageError("list", "posts", err)
	}
	return posts, nil
}

// PostsByCategory returns the category named by slug and its published posts.
func (s *Service) PostsByCategory(ctx context.Context, slug string) (*models.Category, []models.Post, error) {
	category, err := s.categories.FindCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, nil, errs.NewStorageError("find", "category", err)
	}
	posts, err := s.posts.ListPublishedPostsByCategorySlug(ctx, category.Slug)
	if err != nil {
		return nil, nil, errs.NewStorageError("list", "posts", err)
	}
	return category, posts, nil
}

// RelatedPosts lists other published posts of the same category. An
// uncategorized post has no related posts.
func (s *Service) RelatedPosts(ctx context.Context, post *models.Post, limit int) ([]models.Post, error) {
	if post == nil || post.CategoryID == nil {
		return []models.Post{}, nil
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	posts, err := s.posts.ListRelatedPosts(ctx, post.ID, *post.CategoryID, limit)
	if err != nil {
		return nil, errs.NewStorageError("list", "related posts", err)
	}
	return posts, nil
}

func (s *Service) ListAll(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.ListAllPosts(ctx)
	if err != nil {
		return nil, errs.NewStorageError("list", "posts", err)
	}
	return posts, nil
}

// FixDrafts clears published_at on drafts that still carry one.
func (s *Service) FixDrafts(ctx context.Context) ([]models.Post, error) {
	fixed, err := s.posts.ClearDraftPublishedAt(ctx)
	if err != nil {
		return nil, errs.NewStorageError("fix", "drafts", err)
	}
	s.logger.Info().Int("fixed", len(fixed)).Msg("Cleared published_at on drafts")
	return fixed, nil
}
