// Package store persists the accumulated processing results as a single
// JSON file, rewritten wholesale and atomically at every checkpoint.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dbellini/catalog-enricher/internal/types"
)

// renameFunc is a seam so tests can simulate rename failures.
var renameFunc = os.Rename

// Store owns the durable result file. It is the sole writer; callers
// decide when to checkpoint.
type Store struct {
	path string
}

// New returns a store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the target file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full record list. A missing file is an empty store, not
// an error; an unreadable or malformed file is a PersistenceError.
func (s *Store) Load() ([]types.ProcessingResult, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &PersistenceError{Op: "load", Path: s.path, Cause: err}
	}

	var results []types.ProcessingResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.path, Cause: err}
	}
	return results, nil
}

// CompletedIDs returns the set of ids present in the record list.
func CompletedIDs(results []types.ProcessingResult) map[int]struct{} {
	ids := make(map[int]struct{}, len(results))
	for _, r := range results {
		ids[r.ID] = struct{}{}
	}
	return ids
}

// Save writes the full record list atomically: serialize to a uniquely
// named temporary file in the target's directory, sync it, then rename
// over the target. On any failure the temporary file is removed and the
// previously committed file is left untouched, so the persisted file is
// always either the prior complete state or the new complete state.
func (s *Store) Save(results []types.ProcessingResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Cause: err}
	}

	dir := filepath.Dir(s.path)
	tmp := filepath.Join(dir, filepath.Base(s.path)+"."+uuid.NewString()+".tmp")

	if err := writeAndSync(tmp, data); err != nil {
		_ = os.Remove(tmp)
		return &PersistenceError{Op: "save", Path: s.path, Cause: err}
	}

	if err := renameFunc(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return &PersistenceError{Op: "save", Path: s.path, Cause: err}
	}
	return nil
}

// writeAndSync writes data to path and fsyncs it before closing.
func writeAndSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
