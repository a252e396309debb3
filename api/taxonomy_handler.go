package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/journal"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TaxonomyEditor manages categories and tags.
type TaxonomyEditor interface {
	CreateOrGetTag(ctx context.Context, name string) (*models.Tag, error)
	CreateCategory(ctx context.Context, in journal.CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, upd journal.CategoryUpdate) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type taxonomyHandler struct {
	responder Responder
	logger    zerolog.Logger
	taxonomy  TaxonomyEditor
}

func newTaxonomyHandler(taxonomy TaxonomyEditor) taxonomyHandler {
	logger := log.With().Str("handlerName", "taxonomyHandler").Logger()

	return taxonomyHandler{
		responder: NewResponder(logger),
		logger:    logger,
		taxonomy:  taxonomy,
	}
}

type tagRequest struct {
	Name string `json:"name"`
}

func (h taxonomyHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tagRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}

		tag, err := h.taxonomy.CreateOrGetTag(r.Context(), req.Name)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, tag)
	}
}

func (h taxonomyHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in journal.CategoryInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.taxonomy.CreateCategory(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, category)
	}
}

func (h taxonomyHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuidParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var upd journal.CategoryUpdate
		if err := decodeJSON(w, r, &upd); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.taxonomy.UpdateCategory(r.Context(), categoryID, upd)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, category)
	}
}

func (h taxonomyHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuidParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.taxonomy.DeleteCategory(r.Context(), categoryID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, successResponse{Success: true})
	}
}
