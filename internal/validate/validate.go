// Package validate runs post-hoc integrity checks on completed results.
// All checks are non-fatal: they produce warnings, never rejections.
package validate

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dbellini/catalog-enricher/internal/types"
)

// Warning describes one integrity issue found in a completed result.
type Warning struct {
	Label string
	Value string
}

func (w Warning) String() string {
	if w.Value != "" {
		return fmt.Sprintf("highlight %q not found in description", w.Value)
	}
	return fmt.Sprintf("%s: no paragraph markup in description", w.Label)
}

// CheckHighlights verifies that every selected highlight actually appears
// in the final description, as a case-insensitive substring match.
func CheckHighlights(result types.ProcessingResult, hs types.HighlightSet) []Warning {
	var warnings []Warning
	description := strings.ToLower(result.FinalDescription)
	for _, label := range hs.Labels() {
		selected := result.Selected[label]
		if selected != "" && !strings.Contains(description, strings.ToLower(selected)) {
			warnings = append(warnings, Warning{Label: label, Value: selected})
		}
	}
	return warnings
}

// CheckMarkup warns when the final description does not parse into any
// paragraph content, since the service is instructed to return plain HTML.
func CheckMarkup(result types.ProcessingResult) []Warning {
	if result.FinalDescription == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.FinalDescription))
	if err != nil || doc.Find("p").Length() == 0 {
		return []Warning{{Label: "markup"}}
	}
	return nil
}
