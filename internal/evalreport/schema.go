package evalreport

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// reportSchema describes the minimal shape a report must have. Additional
// properties are allowed at every level so newer runners stay compatible.
var reportSchema = map[string]any{
	"type":     "object",
	"required": []string{"results"},
	"properties": map[string]any{
		"metadata": map[string]any{
			"type": []string{"object", "null"},
			"properties": map[string]any{
				"overall_pass_rate": map[string]any{"type": []string{"number", "null"}},
			},
		},
		"results": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"test_id", "category", "passed"},
				"properties": map[string]any{
					"test_id":  map[string]any{"type": "string"},
					"category": map[string]any{"type": "string"},
					"passed":   map[string]any{"type": "boolean"},
				},
			},
		},
	},
}

var reportSchemaLoader = gojsonschema.NewGoLoader(reportSchema)

// validateShape checks raw against reportSchema. The returned error wraps
// ErrMalformedSource when the document does not conform.
func validateShape(raw []byte) error {
	result, err := gojsonschema.Validate(reportSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrMalformedSource, strings.Join(errs, ", "))
}
