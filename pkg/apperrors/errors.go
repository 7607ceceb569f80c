// Package apperrors holds sentinel errors shared across services and
// handlers.
package apperrors

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrMissingAnchor     = errors.New("commitment must reference a project or a person")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDeleted           = errors.New("entry has been deleted")
)
