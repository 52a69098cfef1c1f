package services

import (
	"errors"
	"fmt"

	"tutorbot-backend/internal/gemini"
)

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// SafetyRejection means the question hit the blocklist.
type SafetyRejection struct{ Term string }

func (e *SafetyRejection) Error() string {
	return fmt.Sprintf("question contains blocked term %q", e.Term)
}

// UpstreamFailure wraps a failed generation call.
type UpstreamFailure struct{ Err error }

func (e *UpstreamFailure) Error() string { return "upstream failure: " + e.Details() }

func (e *UpstreamFailure) Unwrap() error { return e.Err }

// Details describes the underlying failure without the service prefixes.
func (e *UpstreamFailure) Details() string {
	var unavailable *gemini.UnavailableError
	if errors.As(e.Err, &unavailable) {
		return unavailable.Details()
	}
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}
