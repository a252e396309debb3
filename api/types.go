package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/errs"
)

const maxJSONBodySize = 1 << 20

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler      healthHandler
	journalHandler     journalHandler
	postHandler        postHandler
	taxonomyHandler    taxonomyHandler
	galleryHandler     galleryHandler
	contactHandler     contactHandler
	assistantHandler   assistantHandler
	maintenanceHandler maintenanceHandler
	sessionHandler     sessionHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Phase   string `json:"phase,omitempty"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// Pinger reports whether a backing service answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		return errs.NewMalformedPayloadError("json", err)
	}
	return nil
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError(name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(name, "must be a UUID")
	}
	return id, nil
}

// intQuery parses an optional non-negative integer query parameter.
func intQuery(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errs.NewInvalidFieldError(name, "must be a non-negative integer")
	}
	return n, nil
}
