package source

import "fmt"

// NotFoundError indicates that an input file is absent.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("input file not found: %s", e.Path)
}

// ValidationError indicates that an input file exists but its content is
// empty or malformed. It always aborts the run before any processing starts.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Path, e.Message)
}
