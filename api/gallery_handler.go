package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	maxGalleryUploadSize = 5 << 20
	multipartOverhead    = 1 << 20
)

type GalleryStore interface {
	ListGalleryImages(ctx context.Context, featuredOnly bool) ([]models.GalleryImage, error)
	FindGalleryImage(ctx context.Context, id uuid.UUID) (*models.GalleryImage, error)
	AppendGalleryImage(ctx context.Context, image *models.GalleryImage) error
	SetGalleryImageFeatured(ctx context.Context, id uuid.UUID, featured bool) (*models.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, id uuid.UUID) error
	MoveGalleryImage(ctx context.Context, id uuid.UUID, direction models.MoveDirection) (bool, error)
}

// ObjectStore holds the uploaded image files.
type ObjectStore interface {
	GalleryKey(fileName string) string
	Upload(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

type galleryHandler struct {
	responder Responder
	logger    zerolog.Logger
	images    GalleryStore
	objects   ObjectStore
}

func newGalleryHandler(images GalleryStore, objects ObjectStore) galleryHandler {
	logger := log.With().Str("handlerName", "galleryHandler").Logger()

	return galleryHandler{
		responder: NewResponder(logger),
		logger:    logger,
		images:    images,
		objects:   objects,
	}
}

type galleryCollection struct {
	Images []models.GalleryImage `json:"images"`
}

type uploadResponse struct {
	Success bool                 `json:"success"`
	URL     string               `json:"url"`
	Image   *models.GalleryImage `json:"image"`
}

type featuredRequest struct {
	IsFeatured *bool `json:"is_featured"`
}

func (h galleryHandler) list(featuredOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		images, err := h.images.ListGalleryImages(r.Context(), featuredOnly)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list", "gallery images", err))
			return
		}
		h.responder.WriteJSON(w, galleryCollection{Images: images})
	}
}

func (h galleryHandler) getFeatured() http.HandlerFunc {
	return h.list(true)
}

func (h galleryHandler) getAll() http.HandlerFunc {
	return h.list(false)
}

// upload stores an image file and appends it to the end of the gallery.
func (h galleryHandler) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.objects == nil {
			h.responder.WriteError(w, errs.NewConfigError("STORAGE_BUCKET", nil))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxGalleryUploadSize+multipartOverhead)
		file, header, err := r.FormFile("file")
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("File size must be less than 5MB", "file", ""))
				return
			}
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("No file provided", "file", ""))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("File must be an image", "file", contentType))
			return
		}
		if header.Size > maxGalleryUploadSize {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("File size must be less than 5MB", "file", ""))
			return
		}

		key := h.objects.GalleryKey(header.Filename)
		url, err := h.objects.Upload(r.Context(), key, contentType, header.Size, file)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		image := &models.GalleryImage{URL: url, IsFeatured: true}
		if alt := strings.TrimSpace(r.FormValue("altText")); alt != "" {
			image.AltText = &alt
		}
		if err := h.images.AppendGalleryImage(r.Context(), image); err != nil {
			if delErr := h.objects.Delete(r.Context(), key); delErr != nil {
				h.logger.Warn().Err(delErr).Str("key", key).Msg("Failed to remove uploaded object after insert failure")
			}
			h.responder.WriteError(w, errs.NewDatabaseError("create", "gallery image", err))
			return
		}

		h.responder.WriteJSON(w, uploadResponse{Success: true, URL: url, Image: image})
	}
}

func (h galleryHandler) setFeatured() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		imageID, err := uuidParam(r, "imageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req featuredRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.IsFeatured == nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("is_featured"))
			return
		}

		image, err := h.images.SetGalleryImageFeatured(r.Context(), imageID, *req.IsFeatured)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "gallery image", err))
			return
		}
		h.responder.WriteJSON(w, image)
	}
}

// delete removes the stored object when it lives in our bucket, then the row.
// A row that is already gone is not an error.
func (h galleryHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		imageID, err := uuidParam(r, "imageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		image, err := h.images.FindGalleryImage(r.Context(), imageID)
		switch {
		case errs.IsNotFound(err):
			h.logger.Warn().Str("imageID", imageID.String()).Msg("Gallery image row missing, treating as orphan")
		case err != nil:
			h.responder.WriteError(w, errs.NewDatabaseError("find", "gallery image", err))
			return
		case h.objects != nil:
			if key, ok := h.objects.KeyFromURL(image.URL); ok {
				if err := h.objects.Delete(r.Context(), key); err != nil {
					h.logger.Warn().Err(err).Str("key", key).Msg("Failed to delete gallery object")
				}
			}
		}

		if err := h.images.DeleteGalleryImage(r.Context(), imageID); err != nil && !errs.IsNotFound(err) {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "gallery image", err))
			return
		}
		h.responder.WriteJSON(w, successResponse{Success: true})
	}
}

// move swaps an image with its neighbour. Moving past either end is a no-op.
func (h galleryHandler) move() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		imageID, err := uuidParam(r, "imageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		direction := models.MoveDirection(r.URL.Query().Get("direction"))
		if direction != models.MoveUp && direction != models.MoveDown {
			h.responder.WriteError(w, errs.NewInvalidFieldError("direction", "must be up or down"))
			return
		}

		moved, err := h.images.MoveGalleryImage(r.Context(), imageID, direction)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("move", "gallery image", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"success": true, "moved": moved})
	}
}
