// Package prompt builds the enrichment request sent to the model for one
// product. The output is opaque to the rest of the pipeline.
package prompt

import (
	"fmt"
	"strings"

	"github.com/dbellini/catalog-enricher/internal/types"
)

// Build constructs the highlight-selection prompt for one product.
// Groups are emitted in sorted label order so the prompt is stable
// across runs for the same inputs.
func Build(id int, title, description string, hs types.HighlightSet) string {
	var sb strings.Builder

	sb.WriteString("<ruolo>\n")
	sb.WriteString("Sei un esperto di marketing per prodotti pet care. ")
	sb.WriteString("Il tuo compito e' analizzare la descrizione di un prodotto e ")
	sb.WriteString("selezionare i product highlights piu' pertinenti tra quelli proposti.\n")
	sb.WriteString("</ruolo>\n\n")

	fmt.Fprintf(&sb, "<descrizione-prodotto>%s</descrizione-prodotto>\n\n", description)

	labels := hs.Labels()
	for _, label := range labels {
		fmt.Fprintf(&sb, "<%s>\n", label)
		for _, v := range hs[label] {
			fmt.Fprintf(&sb, "- %s\n", v)
		}
		fmt.Fprintf(&sb, "</%s>\n\n", label)
	}

	sb.WriteString("<richiesta>\n")
	sb.WriteString("Leggi il contenuto del tag 'descrizione-prodotto'. ")
	sb.WriteString("Per ciascuno dei gruppi di product-highlights, ")
	sb.WriteString("seleziona esattamente UN valore (senza modificarlo) ")
	sb.WriteString("che sia il piu' pertinente rispetto alla descrizione del prodotto.\n")
	sb.WriteString("</richiesta>\n\n")

	sb.WriteString("<istruzioni>\n")
	fmt.Fprintf(&sb, "1. Per ciascun gruppo (%s), fai un ranking di tutti i valori dal piu' pertinente al meno pertinente.\n", strings.Join(labels, ", "))
	sb.WriteString("2. Per ogni ranking, spiega brevemente il motivo della classifica.\n")
	sb.WriteString("3. Seleziona il valore al primo posto di ciascun ranking.\n")
	sb.WriteString("4. Riscrivi la descrizione originale inserendo naturalmente nel testo ")
	sb.WriteString("tutti i product-highlights selezionati. ")
	sb.WriteString("Integra ciascun highlight nel punto piu' appropriato del testo, ")
	sb.WriteString("come parte naturale del discorso.\n")
	sb.WriteString("5. Mantieni ESATTAMENTE il testo della descrizione originale: ")
	sb.WriteString("limitati SOLO ad integrare i product-highlights selezionati ")
	sb.WriteString("(ESATTAMENTE lo stesso testo); se necessario riscrivi la frase, ")
	sb.WriteString("importante che il product-highlight sia integrato verbatim.\n")
	sb.WriteString("6. Se trovi errori di battitura o spazi in eccesso nella descrizione originale, correggili.\n")
	sb.WriteString("7. Il formato di output deve essere HTML (senza titoli, senza bullet point, senza heading). ")
	sb.WriteString("Testo piano in HTML.\n")
	sb.WriteString("8. Restituisci il risultato finale ESCLUSIVAMENTE come dizionario JSON ")
	sb.WriteString("con il seguente formato:\n")
	sb.WriteString("{\n")
	fmt.Fprintf(&sb, "  \"id\": %d,\n", id)
	fmt.Fprintf(&sb, "  \"titolo\": %q,\n", title)
	sb.WriteString("  \"descrizione-iniziale\": \"<descrizione originale senza modifiche>\",\n")
	for _, label := range labels {
		fmt.Fprintf(&sb, "  %q: \"<valore scelto>\",\n", label)
	}
	sb.WriteString("  \"descrizione\": \"<descrizione originale con gli highlights integrati, in formato HTML>\"\n")
	sb.WriteString("}\n")
	sb.WriteString("</istruzioni>")

	return sb.String()
}
