package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across repositories and services. Controllers map
// these to HTTP statuses; InvalidID must stay distinct from NotFound so a
// malformed id is a 400, not a 404.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrInvalidID = errors.New("invalid id format")
)

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the full field→message list for a rejected request.
// It is returned before any store mutation happens.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field error and returns the extended list.
func (v ValidationErrors) Add(field, message string) ValidationErrors {
	return append(v, FieldError{Field: field, Message: message})
}

// AsValidationErrors unwraps err into ValidationErrors if possible.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
