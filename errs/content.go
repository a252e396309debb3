package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Phase names the step of a post save that failed, so a caller can tell
// whether to re-edit, retry, or alert.
type Phase string

const (
	PhaseValidation Phase = "validation"
	PhaseDerivation Phase = "derivation"
	PhaseStorage    Phase = "storage"
	PhaseTags       Phase = "tags"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrDerivation      = errors.New("derivation failed")
	ErrTagsNotUpdated  = errors.New("post saved but tags were not updated")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrEmptyDerivedKey = errors.New("derived slug is empty")
)

// NewValidationError reports a missing or blank field before anything is written.
func NewValidationError(field, details string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%s: %w", field, ErrValidation),
		Details:    details,
		Field:      field,
		Phase:      PhaseValidation,
	}
}

func NewInvalidStatusError(field, value string, allowed []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%w: %w", ErrValidation, ErrInvalidStatus),
		Details:    fmt.Sprintf("%q is not one of %v", value, allowed),
		Field:      field,
		Phase:      PhaseValidation,
	}
}

// NewDerivationError reports a source value from which no slug could be built.
func NewDerivationError(field, source string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%w: %w", ErrDerivation, ErrEmptyDerivedKey),
		Details:    fmt.Sprintf("%s %q contains no letters or digits", field, source),
		Field:      field,
		Phase:      PhaseDerivation,
	}
}

// NewStorageError classifies a repository failure and tags it with the storage phase.
func NewStorageError(operation, entity string, cause error) *ApiErr {
	apiErr := NewDatabaseError(operation, entity, cause)
	apiErr.Phase = PhaseStorage
	return apiErr
}

// NewTagReconcileError reports that the post row was persisted but its tag set
// was left as it was before the request.
func NewTagReconcileError(postID string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrTagsNotUpdated,
		Details:    fmt.Sprintf("post %s was saved; its previous tags were kept", postID),
		Field:      "tags",
		Cause:      cause,
		Phase:      PhaseTags,
	}
}

// PhaseOf returns the phase recorded on err, or "" when err carries none.
func PhaseOf(err error) Phase {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.Phase
	}
	return ""
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsDerivationError(err error) bool {
	return errors.Is(err, ErrDerivation)
}

func IsTagReconcileError(err error) bool {
	return errors.Is(err, ErrTagsNotUpdated)
}
