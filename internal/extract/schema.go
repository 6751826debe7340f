package extract

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// payloadSchema describes the minimum shape of a usable enrichment payload.
// Only the id is required: the descriptive fields are merged with the work
// item's own data downstream, but a payload without a numeric id is junk.
const payloadSchema = `{
	"type": "object",
	"required": ["id"],
	"properties": {
		"id": {"type": "number"},
		"titolo": {"type": "string"},
		"descrizione-iniziale": {"type": "string"},
		"descrizione": {"type": "string"}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(payloadSchema)

// ValidateShape checks the decoded payload against the payload schema.
// A shape failure is an ExtractionError, which the transformer retries
// like any other malformed response.
func ValidateShape(p Payload) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(map[string]any(p)))
	if err != nil {
		return &ExtractionError{Message: "schema validation", Cause: err}
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return &ExtractionError{Message: fmt.Sprintf("payload shape invalid: %s", strings.Join(details, "; "))}
	}
	return nil
}
