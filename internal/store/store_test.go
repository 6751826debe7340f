package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbellini/catalog-enricher/internal/types"
)

func sampleResults() []types.ProcessingResult {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return []types.ProcessingResult{
		{
			ID:                 1,
			Title:              "Cuccia morbida",
			InitialDescription: "Una cuccia.",
			Selected:           map[string]string{"product-highlights-1": "materiale premium"},
			FinalDescription:   "<p>Una cuccia in materiale premium.</p>",
			Prompt:             "prompt",
			StartTime:          now,
			EndTime:            now.Add(3 * time.Second),
			DurationSeconds:    3,
		},
		{ID: 2, Title: "Gioco in corda", Selected: map[string]string{}},
	}
}

func TestLoad_MissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "results.json"))

	results, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, []byte("{not a list"), 0o644))

	_, err := New(path).Load()
	var persistErr *PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, "load", persistErr.Op)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	s := New(path)

	want := sampleResults()
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSave_OverwritesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	s := New(path)

	require.NoError(t, s.Save(sampleResults()[:1]))
	require.NoError(t, s.Save(sampleResults()))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSave_RenameFailureKeepsPriorState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")
	s := New(path)

	require.NoError(t, s.Save(sampleResults()[:1]))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	renameErr := errors.New("rename interrupted")
	renameFunc = func(string, string) error { return renameErr }
	defer func() { renameFunc = os.Rename }()

	saveErr := s.Save(sampleResults())
	var persistErr *PersistenceError
	require.ErrorAs(t, saveErr, &persistErr)
	assert.ErrorIs(t, saveErr, renameErr)

	// The committed file is byte-identical to its pre-save state and the
	// temporary file was cleaned up.
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "results.json", entries[0].Name())
}

func TestSave_WriteFailureCleansUp(t *testing.T) {
	// A store pointed at a missing directory cannot create its temp file.
	s := New(filepath.Join(t.TempDir(), "missing", "results.json"))

	err := s.Save(sampleResults())
	var persistErr *PersistenceError
	require.ErrorAs(t, err, &persistErr)
}

func TestCompletedIDs(t *testing.T) {
	ids := CompletedIDs(sampleResults())
	assert.Len(t, ids, 2)
	_, ok := ids[1]
	assert.True(t, ok)
	_, ok = ids[2]
	assert.True(t, ok)
	_, ok = ids[3]
	assert.False(t, ok)
}
