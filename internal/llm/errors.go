package llm

import "fmt"

// ServiceError represents a failed call to the external service. Network
// failures, timeouts and server-side errors all surface through it; the
// transformer treats every service failure as transient and retries.
type ServiceError struct {
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("service call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("service call failed: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}
