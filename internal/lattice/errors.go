package lattice

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents an error response from the control plane.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("control plane error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("control plane error (status %d): %s", e.StatusCode, e.Message)
}

// IsConflict reports whether err is a name-uniqueness rejection. The control
// plane refuses any job, group, or endpoint name it has already seen.
func IsConflict(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusConflict || apiErr.Code == "ResourceInUse"
	}
	return false
}

// IsNotFound reports whether err indicates a missing resource.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound || apiErr.Code == "ResourceNotFound"
	}
	return false
}
