package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/journal"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PostAuthor is the admin authoring side of the Journal.
type PostAuthor interface {
	ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	CreatePost(ctx context.Context, authorID string, in journal.PostInput) (*models.Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	UpdatePost(ctx context.Context, id uuid.UUID, upd journal.PostUpdate) (*models.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
}

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     PostAuthor
}

func newPostHandler(posts PostAuthor) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
	}
}

type postCollection struct {
	Posts []models.Post `json:"posts"`
	Total int           `json:"total"`
}

func (h postHandler) getMyPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.posts.ListByAuthor(r.Context(), ctxGetUserID(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, postCollection{Posts: posts, Total: len(posts)})
	}
}

func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in journal.PostInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.CreatePost(r.Context(), ctxGetUserID(r.Context()), in)
		if err != nil {
			if post != nil {
				h.logger.Error().Err(err).Str("postID", post.ID.String()).Msg("Post created but tags were not updated")
			}
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, post)
	}
}

func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuidParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.GetPost(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// updatePost applies only the keys present in the body; null clears a nullable field.
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuidParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var upd journal.PostUpdate
		if err := decodeJSON(w, r, &upd); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.UpdatePost(r.Context(), postID, upd)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuidParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.posts.DeletePost(r.Context(), postID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, successResponse{Success: true})
	}
}
