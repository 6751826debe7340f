// Package extract recovers a structured JSON payload from free-form model
// responses. Responses are not guaranteed to be format-clean: the payload
// may sit inside a markdown fence, between explanatory prose, or stand
// alone, so extraction runs a cascade of strategies from the most
// syntactically conservative to the most permissive.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Payload is the decoded JSON object recovered from a response.
type Payload map[string]any

// strategy locates one candidate JSON span in the response text. The span
// is parsed strictly; if it does not parse, the cascade falls through to
// the next strategy.
type strategy struct {
	name string
	find func(text string) (string, bool)
}

var strategies = []strategy{
	{"fenced-block", fencedBlock},
	{"balanced-span", balancedSpan},
	{"greedy-span", greedySpan},
}

var fenceRe = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")

// Extract runs the cascade over the response text, first successful parse
// wins. Returns an ExtractionError when no strategy yields a valid object.
func Extract(text string) (Payload, error) {
	for _, s := range strategies {
		raw, ok := s.find(text)
		if !ok {
			continue
		}
		var p Payload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			continue
		}
		return p, nil
	}
	return nil, &ExtractionError{Message: "no structured payload found"}
}

// fencedBlock returns the inner content of the first markdown code fence,
// optionally tagged with a language identifier.
func fencedBlock(text string) (string, bool) {
	m := fenceRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// balancedSpan returns the shortest brace span starting at the first "{"
// whose braces balance. The scan is not string-aware: a brace inside a
// JSON string throws the count off, which is why the parse failure falls
// through to the greedy strategy.
func balancedSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// greedySpan returns the full span from the first "{" to the last "}".
func greedySpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
