// internal/common/validation/schema.go
package validation

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"housing-workers/internal/estimator"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

const rootContext = "(root)"

var featureSchemaLoader = gojsonschema.NewGoLoader(estimator.FeatureSchema())

// ValidateFeatures checks a features JSON document against the accepted ranges.
// An empty or null document is valid; every field then takes its default.
func ValidateFeatures(raw []byte) (*ValidationResult, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return &ValidationResult{Valid: true}, nil
	}
	return validate(featureSchemaLoader, gojsonschema.NewBytesLoader(trimmed))
}

func validate(schema, document gojsonschema.JSONLoader) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   fieldOf(desc),
			Message: desc.Description(),
			Code:    codeOf(desc.Type()),
		})
	}

	return &ValidationResult{
		Valid:  result.Valid(),
		Errors: errs,
	}, nil
}

// fieldOf names the offending property for errors gojsonschema reports on the root.
func fieldOf(desc gojsonschema.ResultError) string {
	switch desc.Type() {
	case "additional_property_not_allowed", "required":
		if prop, ok := desc.Details()["property"].(string); ok {
			field := desc.Field()
			switch {
			case field == prop || strings.HasSuffix(field, "."+prop):
				return field
			case field == rootContext:
				return prop
			default:
				return field + "." + prop
			}
		}
	}
	return desc.Field()
}

func codeOf(resultType string) string {
	switch resultType {
	case "required":
		return "REQUIRED_FIELD_MISSING"
	case "additional_property_not_allowed":
		return "EXTRA_FIELD"
	case "invalid_type":
		return "INVALID_TYPE"
	case "number_gte", "number_gt":
		return "MINIMUM_VIOLATION"
	case "number_lte", "number_lt":
		return "MAXIMUM_VIOLATION"
	case "enum":
		return "INVALID_ENUM_VALUE"
	default:
		return strings.ToUpper(resultType)
	}
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}
