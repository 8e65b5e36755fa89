package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// FieldError describes a single invalid field in a 422 response.
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// APIError is the normalized form of every non-2xx response.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  []FieldError
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("api error %d: %s (%d invalid fields)", e.Status, e.Message, len(e.Fields))
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether the error is a 404.
func (e *APIError) IsNotFound() bool { return e.Status == http.StatusNotFound }

// IsConflict reports whether the error is a 409.
func (e *APIError) IsConflict() bool { return e.Status == http.StatusConflict }

// IsValidation reports whether the error is a 422.
func (e *APIError) IsValidation() bool { return e.Status == http.StatusUnprocessableEntity }

// newAPIError builds an APIError from a response body. Bodies that are not
// the server's JSON error shape still produce a usable error.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		Status: status,
		Code:   http.StatusText(status),
	}

	var parsed struct {
		Error  string       `json:"error"`
		Fields []FieldError `json:"fields"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		apiErr.Message = parsed.Error
		apiErr.Fields = parsed.Fields
	} else {
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}
