package storage

import (
	"bytes"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigJSONSchema documents the runtime shape expected by the article store
// backend. Provider-specific options are captured in the nested "options" map.
const ConfigJSONSchema = `
{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "StorageConfig",
  "type": "object",
  "required": ["driver", "dsn"],
  "properties": {
    "name": {
      "type": "string",
      "description": "Human readable identifier for the storage configuration"
    },
    "driver": {
      "type": "string",
      "enum": ["sqlite", "postgres"],
      "description": "Driver identifier understood by the storage adapter"
    },
    "dsn": {
      "type": "string",
      "minLength": 1,
      "description": "Connection string or URI for the backend"
    },
    "readOnly": {
      "type": "boolean",
      "default": false
    },
    "options": {
      "type": "object",
      "additionalProperties": true
    }
  },
  "additionalProperties": false
}
`

// ValidateConfigPayload checks a raw configuration document (e.g. from an
// admin API or a config file) against ConfigJSONSchema before it is applied.
func ValidateConfigPayload(payload map[string]any) error {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("storage-config.json", bytes.NewReader([]byte(ConfigJSONSchema))); err != nil {
		return fmt.Errorf("storage: compile config schema: %w", err)
	}
	schema, err := compiler.Compile("storage-config.json")
	if err != nil {
		return fmt.Errorf("storage: compile config schema: %w", err)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	if err := schema.Validate(normalize(payload)); err != nil {
		return fmt.Errorf("storage: invalid config: %w", err)
	}
	return nil
}

// ConfigFromPayload maps a validated payload onto a Config value.
func ConfigFromPayload(payload map[string]any) (Config, error) {
	if err := ValidateConfigPayload(payload); err != nil {
		return Config{}, err
	}
	cfg := Config{}
	if v, ok := payload["name"].(string); ok {
		cfg.Name = strings.TrimSpace(v)
	}
	if v, ok := payload["driver"].(string); ok {
		cfg.Driver = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := payload["dsn"].(string); ok {
		cfg.DSN = v
	}
	if v, ok := payload["readOnly"].(bool); ok {
		cfg.ReadOnly = v
	}
	if v, ok := payload["options"].(map[string]any); ok && len(v) > 0 {
		cfg.Options = make(map[string]any, len(v))
		for key, value := range v {
			cfg.Options[key] = value
		}
	}
	return cfg, nil
}

func normalize(payload map[string]any) any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	return out
}
