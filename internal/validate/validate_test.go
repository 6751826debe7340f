package validate

import (
	"strings"
	"testing"

	"github.com/dbellini/catalog-enricher/internal/types"
)

func highlightSet() types.HighlightSet {
	return types.HighlightSet{
		"product-highlights-1": {"premium material", "washable"},
		"product-highlights-2": {"durable"},
		"product-highlights-3": {"hypoallergenic"},
	}
}

func TestCheckHighlights_MissingSelection(t *testing.T) {
	result := types.ProcessingResult{
		FinalDescription: "a great toy",
		Selected: map[string]string{
			"product-highlights-1": "premium material",
		},
	}

	warnings := CheckHighlights(result, highlightSet())
	if len(warnings) != 1 {
		t.Fatalf("CheckHighlights() returned %d warnings, want 1", len(warnings))
	}
	if warnings[0].Value != "premium material" {
		t.Errorf("warning names %q, want %q", warnings[0].Value, "premium material")
	}
	if !strings.Contains(warnings[0].String(), `"premium material"`) {
		t.Errorf("warning message %q does not name the missing value", warnings[0].String())
	}
}

func TestCheckHighlights_CaseInsensitiveMatch(t *testing.T) {
	result := types.ProcessingResult{
		FinalDescription: "<p>A toy made of Premium Material, fully DURABLE.</p>",
		Selected: map[string]string{
			"product-highlights-1": "premium material",
			"product-highlights-2": "Durable",
		},
	}

	if warnings := CheckHighlights(result, highlightSet()); len(warnings) != 0 {
		t.Errorf("CheckHighlights() = %v, want none", warnings)
	}
}

func TestCheckHighlights_EmptySelectionIgnored(t *testing.T) {
	result := types.ProcessingResult{
		FinalDescription: "a great toy",
		Selected:         map[string]string{},
	}

	if warnings := CheckHighlights(result, highlightSet()); len(warnings) != 0 {
		t.Errorf("CheckHighlights() = %v, want none for empty selections", warnings)
	}
}

func TestCheckMarkup(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantWarning bool
	}{
		{"paragraph markup", "<p>Un gioco</p>", false},
		{"bare text", "Un gioco", true},
		{"empty description skipped", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := CheckMarkup(types.ProcessingResult{FinalDescription: tt.description})
			if got := len(warnings) > 0; got != tt.wantWarning {
				t.Errorf("CheckMarkup(%q) warning = %v, want %v", tt.description, got, tt.wantWarning)
			}
		})
	}
}
