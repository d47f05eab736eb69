package models

// APIResponse is the generic envelope for all API responses
type APIResponse struct {
	Success bool         `json:"success"`           // true on 2xx, false otherwise
	Code    int          `json:"code"`              // HTTP status code (200, 400, 500, etc.)
	Message string       `json:"message,omitempty"` // Human-readable message
	Data    interface{}  `json:"data,omitempty"`    // Any response data (can be map, struct, list, etc.)
	Error   *APIError    `json:"error,omitempty"`   // Detailed error info (nil if success)
	Errors  []FieldError `json:"errors,omitempty"`  // Field-level validation failures
}

// APIError holds detailed error information
type APIError struct {
	Type    string `json:"type,omitempty"`    // e.g., "ValidationError", "NotFoundError"
	Details string `json:"details,omitempty"` // More context about the error
	Field   string `json:"field,omitempty"`   // For validation errors (which field failed)
}
