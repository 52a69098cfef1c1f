package gemini

import "fmt"

// UnavailableError means no usable response came back from the generation
// API: the request failed, timed out, returned a non-2xx status, or the body
// was not JSON.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation API unavailable: %v", e.Err)
	}
	return "generation API unavailable"
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Details is the description of the underlying failure.
func (e *UnavailableError) Details() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}
