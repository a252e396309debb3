package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/journal"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// PostReader is the public, read-only side of the Journal.
type PostReader interface {
	ListPublished(ctx context.Context, limit int) ([]models.Post, error)
	GetPublishedPost(ctx context.Context, slug string) (*models.Post, error)
	RelatedPosts(ctx context.Context, post *models.Post, limit int) ([]models.Post, error)
	RecordView(ctx context.Context, id uuid.UUID)
	PostsByCategory(ctx context.Context, slug string) (*models.Category, []models.Post, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
}

type journalHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     PostReader
}

func newJournalHandler(posts PostReader) journalHandler {
	logger := log.With().Str("handlerName", "journalHandler").Logger()

	return journalHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
	}
}

type journalIndex struct {
	Posts      []models.Post     `json:"posts"`
	Categories []models.Category `json:"categories"`
}

// postView is a published post with its display fallbacks already resolved.
type postView struct {
	Post           *models.Post  `json:"post"`
	Excerpt        string        `json:"excerpt"`
	SEOTitle       string        `json:"seo_title"`
	SEODescription string        `json:"seo_description"`
	Related        []models.Post `json:"related"`
}

type categoryPosts struct {
	Category *models.Category `json:"category"`
	Posts    []models.Post    `json:"posts"`
}

// getIndex loads the feed and the category list concurrently.
func (h journalHandler) getIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := intQuery(r, "limit", 0)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var index journalIndex
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			posts, err := h.posts.ListPublished(ctx, limit)
			index.Posts = posts
			return err
		})
		g.Go(func() error {
			categories, err := h.posts.ListCategories(ctx)
			index.Categories = categories
			return err
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, index)
	}
}

func (h journalHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		post, err := h.posts.GetPublishedPost(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		related, err := h.posts.RelatedPosts(r.Context(), post, journal.DefaultRelatedLimit)
		if err != nil {
			h.logger.Warn().Err(err).Str("slug", slug).Msg("Failed to load related posts")
			related = []models.Post{}
		}

		h.posts.RecordView(r.Context(), post.ID)

		h.responder.WriteJSON(w, postView{
			Post:           post,
			Excerpt:        journal.DisplayExcerpt(post),
			SEOTitle:       journal.SEOTitle(post),
			SEODescription: journal.SEODescription(post),
			Related:        related,
		})
	}
}

func (h journalHandler) getCategoryPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, posts, err := h.posts.PostsByCategory(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, categoryPosts{Category: category, Posts: posts})
	}
}

func (h journalHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.posts.ListCategories(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{"categories": categories})
	}
}

func (h journalHandler) getTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.posts.ListTags(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{"tags": tags})
	}
}
