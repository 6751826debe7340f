// Package types defines the core data model shared across the enrichment pipeline.
package types

import (
	"sort"
	"time"
)

// WorkItem is one product record to be enriched. Items are supplied by the
// catalog source and never mutated by the pipeline.
type WorkItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// HighlightSet maps a group label (e.g. "product-highlights-1") to its
// ordered candidate values. Candidate strings are always non-empty.
type HighlightSet map[string][]string

// Labels returns the group labels in sorted order so that prompt
// construction and validation walk the groups deterministically.
func (hs HighlightSet) Labels() []string {
	labels := make([]string, 0, len(hs))
	for label := range hs {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// ProcessingResult is the durable record produced for one successfully
// enriched item. Records are created once and never mutated afterwards;
// the result store owns them from then on.
type ProcessingResult struct {
	ID                 int               `json:"id"`
	Title              string            `json:"title"`
	InitialDescription string            `json:"initial_description"`
	Selected           map[string]string `json:"selected"`
	FinalDescription   string            `json:"final_description"`
	Prompt             string            `json:"prompt_text"`
	StartTime          time.Time         `json:"start_time"`
	EndTime            time.Time         `json:"end_time"`
	DurationSeconds    float64           `json:"duration_seconds"`
}

// Failure records one item that exhausted its retries during a run.
// A failed item is never written to the store, so it stays pending for
// the next run.
type Failure struct {
	ID    int
	Title string
	Err   error
}
