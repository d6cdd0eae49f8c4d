package apperrors

import "fmt"

// NotFoundError means the target id does not exist or is soft-deleted.
type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Resource, e.ID)
}

func NewNotFound(resource string, id int) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError is rejected before any mutation; fully recoverable by
// correcting the input.
type ValidationError struct {
	Message string
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(message string) error {
	return &ValidationError{Message: message}
}

func NewValidationWithDetails(message string, details map[string]interface{}) error {
	return &ValidationError{Message: message, Details: details}
}

// ConflictError is a state conflict: resolving an already-resolved approval,
// deactivating a group with active campaigns, deleting a non-deletable
// campaign. Details carries the blocking entities for display.
type ConflictError struct {
	Message string
	Details map[string]interface{}
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflict(message string, details map[string]interface{}) error {
	return &ConflictError{Message: message, Details: details}
}
