package services

import (
	"errors"
	"net/http"
)

// Business error taxonomy. Expected per-item conditions (duplicate
// assignment, empty candidate pool) are reported in result rows, not through
// these types; the types cover operations that cannot proceed at all.

// ValidationError marks malformed input: unknown thematic code, decision
// value, decline reason or file type.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// PreconditionError marks an operation attempted against the wrong state:
// deciding twice, declining a completed assignment, resetting without a
// decision.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

// ConflictError marks an attempted duplicate assignment. Callers treat it as
// a reported no-op, never a fatal failure.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError marks an unknown submission, reviewer or assignment id.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// HTTPStatus maps an engine error onto the HTTP status the controllers
// should answer with.
func HTTPStatus(err error) int {
	var (
		validation   *ValidationError
		precondition *PreconditionError
		conflict     *ConflictError
		notFound     *NotFoundError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &precondition):
		return http.StatusConflict
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
