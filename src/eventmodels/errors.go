package eventmodels

import "fmt"

// ValidationError reports bad input to a pure function or intent handler. It
// is returned immediately and never silently coerced into a usable value.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Msg)
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

// NetworkError wraps a fetch failure or a non-2xx backend response. It is
// surfaced for user-initiated actions and swallowed (logged) during
// background polling.
type NetworkError struct {
	StatusCode int
	URL        string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	}

	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DataShapeError reports a malformed backend payload that survived
// sanitization. Callers treat it as "no data for ticker" rather than a
// fatal condition.
type DataShapeError struct {
	Msg string
	Err error
}

func (e *DataShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}

	return e.Msg
}

func (e *DataShapeError) Unwrap() error {
	return e.Err
}
