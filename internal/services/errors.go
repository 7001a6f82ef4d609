package services

import (
	"errors"

	apperrors "github.com/leadlab/inventory-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Submission specific errors
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrSubmissionComplete = errors.New("submission already complete")
	ErrPageOutOfSequence  = errors.New("page does not match submission progress")
	ErrUnknownInventory   = errors.New("unknown inventory identifier")

	// Statistics specific errors
	ErrInvalidOrganization = errors.New("invalid organization for statistics request")
	ErrInvalidSession      = errors.New("invalid session for statistics request")
	ErrNoData              = errors.New("no inventory data available for the selected sessions")

	// User/Permission errors
	ErrUserNotFound = errors.New("user not found")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSubmissionNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsForbidden checks if error represents a permission failure
func IsForbidden(err error) bool {
	return errors.Is(err, ErrInvalidOrganization) ||
		errors.Is(err, ErrInvalidSession)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	var ves ValidationErrors
	return errors.As(err, &ves)
}
