// Package transform drives a single work item through the external
// service: prompt construction, the retrying call, payload extraction and
// result normalization.
package transform

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/dbellini/catalog-enricher/internal/config"
	"github.com/dbellini/catalog-enricher/internal/extract"
	"github.com/dbellini/catalog-enricher/internal/llm"
	"github.com/dbellini/catalog-enricher/internal/prompt"
	"github.com/dbellini/catalog-enricher/internal/types"
)

// Transformer processes one item per call. It is purely functional given
// its inputs and the service's responses; safe for concurrent use.
type Transformer struct {
	Client llm.Client
	Config config.Config
	Wait   WaitFunc
	Log    *slog.Logger
}

// New builds a Transformer with the exponential backoff policy from the
// configuration. Tests substitute Wait to run without real delay.
func New(client llm.Client, cfg config.Config, log *slog.Logger) *Transformer {
	return &Transformer{
		Client: client,
		Config: cfg,
		Wait:   ExponentialBackoff(cfg.BackoffBase),
		Log:    log,
	}
}

// Process enriches one item, retrying transient failures up to the
// configured attempt cap. Extraction failures count as transient: a
// malformed response triggers a fresh service call. Fails only after
// retry exhaustion, propagating the last observed error.
//
// The recorded duration covers the full span from before the first
// attempt to after the last, backoff waits included.
func (t *Transformer) Process(ctx context.Context, item types.WorkItem, hs types.HighlightSet) (types.ProcessingResult, error) {
	promptText := prompt.Build(item.ID, item.Title, item.Description, hs)

	start := time.Now()
	payload, err := t.callWithRetry(ctx, item, promptText)
	if err != nil {
		return types.ProcessingResult{}, err
	}
	end := time.Now()

	result := types.ProcessingResult{
		// The item's own id, never the model echo: the store dedups on it.
		ID:                 item.ID,
		Title:              stringField(payload, "titolo", item.Title),
		InitialDescription: stringField(payload, "descrizione-iniziale", item.Description),
		Selected:           make(map[string]string, len(hs)),
		Prompt:             promptText,
		StartTime:          start,
		EndTime:            end,
		DurationSeconds:    math.Round(end.Sub(start).Seconds()*100) / 100,
	}

	for _, label := range hs.Labels() {
		if v := stringField(payload, label, ""); v != "" {
			result.Selected[label] = v
		}
	}

	if desc := stringField(payload, "descrizione", ""); desc != "" {
		result.FinalDescription = EnsureParagraph(desc)
	}

	return result, nil
}

// callWithRetry performs the service call and payload extraction, waiting
// per the backoff policy between attempts.
func (t *Transformer) callWithRetry(ctx context.Context, item types.WorkItem, promptText string) (extract.Payload, error) {
	var lastErr error

	for attempt := 0; attempt < t.Config.MaxAttempts; attempt++ {
		payload, err := t.attempt(ctx, promptText)
		if err == nil {
			return payload, nil
		}
		lastErr = err

		if attempt < t.Config.MaxAttempts-1 {
			wait := t.Wait(attempt)
			t.Log.Warn("retrying item",
				"id", item.ID,
				"attempt", attempt+1,
				"wait", wait,
				"error", err)
			time.Sleep(wait)
		}
	}

	return nil, fmt.Errorf("item %d failed after %d attempts: %w", item.ID, t.Config.MaxAttempts, lastErr)
}

// attempt runs one bounded service call plus extraction.
func (t *Transformer) attempt(ctx context.Context, promptText string) (extract.Payload, error) {
	callCtx, cancel := context.WithTimeout(ctx, t.Config.RequestTimeout)
	defer cancel()

	raw, err := t.Client.GenerateContent(callCtx, promptText)
	if err != nil {
		return nil, err
	}

	payload, err := extract.Extract(raw)
	if err != nil {
		return nil, err
	}
	if err := extract.ValidateShape(payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// EnsureParagraph wraps the description in a paragraph tag unless it
// already starts with one, case-insensitively.
func EnsureParagraph(description string) string {
	text := strings.TrimSpace(description)
	if !strings.HasPrefix(strings.ToLower(text), "<p") {
		text = "<p>" + text + "</p>"
	}
	return text
}

// stringField reads a string key from the payload, falling back when the
// key is absent or not a string.
func stringField(p extract.Payload, key, fallback string) string {
	if v, ok := p[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
