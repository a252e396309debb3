package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PostMaintainer exposes the repair operations for stored posts.
type PostMaintainer interface {
	ListAll(ctx context.Context) ([]models.Post, error)
	FixDrafts(ctx context.Context) ([]models.Post, error)
}

type maintenanceHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     PostMaintainer
}

func newMaintenanceHandler(posts PostMaintainer) maintenanceHandler {
	logger := log.With().Str("handlerName", "maintenanceHandler").Logger()

	return maintenanceHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
	}
}

type postSummary struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Status      models.PostStatus `json:"status"`
	PublishedAt *time.Time        `json:"published_at"`
	CreatedAt   time.Time         `json:"created_at"`
}

func summarize(posts []models.Post) []postSummary {
	summaries := make([]postSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, postSummary{
			ID:          p.ID,
			Title:       p.Title,
			Status:      p.Status,
			PublishedAt: p.PublishedAt,
			CreatedAt:   p.CreatedAt,
		})
	}
	return summaries
}

func (h maintenanceHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.posts.ListAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{
			"count": len(posts),
			"posts": summarize(posts),
		})
	}
}

func (h maintenanceHandler) fixDrafts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fixed, err := h.posts.FixDrafts(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message := "No drafts need fixing"
		if len(fixed) > 0 {
			message = fmt.Sprintf("Fixed %d draft(s)", len(fixed))
		}
		h.responder.WriteJSON(w, map[string]any{
			"message": message,
			"fixed":   len(fixed),
			"posts":   summarize(fixed),
		})
	}
}
