package genclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingAPIKey is returned before any network call when no credential is
// configured. Callers surface it distinctly from "zero questions generated"
// so the user knows to fix configuration rather than retry.
var ErrMissingAPIKey = errors.New("generative API key not configured")

// UpstreamError represents a failed call to the generative backend.
// Status 0 means the request never got an HTTP response (transport failure).
type UpstreamError struct {
	Model  string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	msg := "upstream error"
	if e.Model != "" {
		msg += fmt.Sprintf(" from %s", e.Model)
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status: %d %s)", e.Status, http.StatusText(e.Status))
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Transient reports whether the same request is worth retrying.
// Rate limits, server-side failures and transport errors qualify.
func (e *UpstreamError) Transient() bool {
	return e.Status == 0 || e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// UnknownModel reports whether the backend rejected the model identifier
// itself, in which case the next identifier in the catalog should be tried
// instead of retrying this one.
func (e *UpstreamError) UnknownModel() bool {
	return e.Status == http.StatusNotFound
}

// IsTransient checks if an error is worth retrying with the same request
func IsTransient(err error) bool {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Transient()
	}
	return false
}

// IsUnknownModel checks if an error signals an unrecognized model identifier
func IsUnknownModel(err error) bool {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.UnknownModel()
	}
	return false
}
