package config

import (
	"fmt"
	"strings"

	dserrors "github.com/systmms/secretsource/internal/errors"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// configSchema validates the shape of secretsource.yaml before it is
// decoded into the typed Definition. Store blocks allow arbitrary extra
// keys because store configuration is inlined per type.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "required": ["store"],
  "properties": {
    "version": {"type": "integer"},
    "store": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "type": {"type": "string"}
      }
    },
    "naming": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "secretNames": {"type": "array", "items": {"type": "string"}},
        "name": {"type": "string"},
        "prefix": {"type": "string"},
        "defaultContext": {"type": "string"},
        "profileSeparator": {"type": "string"},
        "failFast": {"type": "boolean"}
      }
    },
    "profiles": {"type": "array", "items": {"type": "string"}},
    "properties": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    }
  }
}`

// validateSchema checks the raw YAML document against the embedded JSON
// schema and converts violations into a ConfigError.
func validateSchema(data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return dserrors.ConfigError{
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters. Use a YAML validator",
		}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("failed to validate configuration: %w", err)
	}

	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return dserrors.ConfigError{
			Message:    "configuration does not match the expected structure: " + strings.Join(problems, "; "),
			Suggestion: "Compare your secretsource.yaml against the documented format",
		}
	}

	return nil
}
