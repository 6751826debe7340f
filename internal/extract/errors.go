package extract

import "fmt"

// ExtractionError indicates that no usable structured payload could be
// recovered from a response. It is retried like a transient service
// failure and surfaced per item only on exhaustion.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
