package store

import "fmt"

// PersistenceError indicates a failed read or write of the durable result
// file. Checkpoint write failures are fatal to the run: the data-integrity
// risk outweighs partial progress.
type PersistenceError struct {
	Op    string
	Path  string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed for %s: %v", e.Op, e.Path, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
