package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dbellini/catalog-enricher/internal/types"
)

func testHighlights() types.HighlightSet {
	return types.HighlightSet{
		"product-highlights-2": {"resistente"},
		"product-highlights-1": {"materiale premium", "lavabile"},
	}
}

func TestBuild_ContainsItemFields(t *testing.T) {
	p := Build(42, "Cuccia morbida", "Una cuccia per cani.", testHighlights())

	for _, want := range []string{
		"<descrizione-prodotto>Una cuccia per cani.</descrizione-prodotto>",
		`"id": 42,`,
		`"titolo": "Cuccia morbida",`,
		"<ruolo>",
		"<richiesta>",
		"<istruzioni>",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("Build() missing %q", want)
		}
	}
}

func TestBuild_GroupBlocksInLabelOrder(t *testing.T) {
	p := Build(1, "Gioco", "Un gioco.", testHighlights())

	first := strings.Index(p, "<product-highlights-1>")
	second := strings.Index(p, "<product-highlights-2>")
	if first < 0 || second < 0 {
		t.Fatal("Build() missing group blocks")
	}
	if first > second {
		t.Error("group blocks not emitted in label order")
	}

	if !strings.Contains(p, "- materiale premium\n- lavabile\n") {
		t.Error("candidate values not listed in group order")
	}
}

func TestBuild_OutputFormatListsEveryGroup(t *testing.T) {
	p := Build(1, "Gioco", "Un gioco.", testHighlights())

	for label := range testHighlights() {
		want := fmt.Sprintf("%q: \"<valore scelto>\",", label)
		if !strings.Contains(p, want) {
			t.Errorf("Build() JSON format missing key for %s", label)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	a := Build(7, "Cuccia", "Descrizione.", testHighlights())
	for i := 0; i < 10; i++ {
		if b := Build(7, "Cuccia", "Descrizione.", testHighlights()); a != b {
			t.Fatal("Build() output varies across calls with identical inputs")
		}
	}
}
