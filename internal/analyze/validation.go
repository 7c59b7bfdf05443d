package analyze

import (
	"bytes"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// bodySchema type-checks each analyze body field individually so that all
// violations can be reported in one 400 response.
var bodySchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"dynamic_field": map[string]interface{}{
			"type": "string",
		},
		"ai_prompt": map[string]interface{}{
			"type": "string",
		},
		"reduce_metadata": map[string]interface{}{
			"type": []string{"boolean", "string"},
		},
		"ai_temperature": map[string]interface{}{
			"type":    "number",
			"minimum": 0,
		},
	},
}

// Violation is one field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateBody checks the raw analyze body against bodySchema. An empty body
// is valid (all fields are optional). The returned error means the body is
// not parseable JSON at all; violations are aggregated otherwise.
func ValidateBody(raw []byte) ([]Violation, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	schemaLoader := gojsonschema.NewGoLoader(bodySchema)
	documentLoader := gojsonschema.NewBytesLoader(trimmed)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	violations := make([]Violation, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, Violation{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}

	return violations, nil
}
