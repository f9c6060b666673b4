package ai

import (
	"fmt"
	"strings"
)

// APICallError signals an exhausted vendor call. The HTTP layer maps it to
// a 500 response.
type APICallError struct {
	Message  string
	Provider string
	Err      error
}

func (e *APICallError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s (provider=%s)", e.Message, e.Provider)
	}
	return e.Message
}

func (e *APICallError) Unwrap() error { return e.Err }

// RateLimitError is an APICallError whose underlying cause looks like
// vendor throttling.
type RateLimitError struct {
	APICallError
}

// rateLimitMarkers are substrings that identify throttling replies across
// the supported vendors.
var rateLimitMarkers = []string{"rate_limit", "rate limit", "quota", "429", "too many requests"}

// WrapVendorError tags err with the provider name, promoting it to a
// RateLimitError when the message suggests throttling. A nil err returns nil.
func WrapVendorError(provider, message string, err error) error {
	if err == nil {
		return nil
	}
	apiErr := APICallError{
		Message:  fmt.Sprintf("%s: %v", message, err),
		Provider: provider,
		Err:      err,
	}
	lower := strings.ToLower(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(lower, marker) {
			return &RateLimitError{APICallError: apiErr}
		}
	}
	return &apiErr
}
