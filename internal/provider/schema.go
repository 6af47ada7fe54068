package provider

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Remote payloads are validated before normalization so a malformed row
// fails loudly instead of producing a half-decoded question mid-session.

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

var questionRowsSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"id", "statement", "options", "correct_index"},
		"properties": map[string]any{
			"id":            map[string]any{"type": []any{"string", "number"}},
			"block":         map[string]any{"type": "integer"},
			"topic":         map[string]any{"type": "string"},
			"difficulty":    map[string]any{"type": "string"},
			"statement":     map[string]any{"type": "string", "minLength": 1},
			"options":       map[string]any{"type": []any{"array", "string"}},
			"correct_index": map[string]any{"type": "integer", "minimum": 0},
			"explanation":   map[string]any{"type": "string"},
			"reference":     map[string]any{"type": "string"},
		},
	},
}

var practicalRowsSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"id", "title", "prompt"},
		"properties": map[string]any{
			"id":          map[string]any{"type": []any{"string", "number"}},
			"block":       map[string]any{"type": "integer"},
			"topic":       map[string]any{"type": "string"},
			"type":        map[string]any{"type": "string"},
			"title":       map[string]any{"type": "string", "minLength": 1},
			"prompt":      map[string]any{"type": "string", "minLength": 1},
			"deliverable": map[string]any{"type": "string"},
			"solution":    map[string]any{"type": "string"},
			"assets":      map[string]any{"type": []any{"object", "string", "null"}},
		},
	},
}

// validatePayload validates raw JSON against the named schema definition.
func validatePayload(name string, definition map[string]any, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidPayload{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := getCompiledSchema(name, definition)
	if err != nil {
		return &ErrInvalidPayload{Err: fmt.Errorf("compile schema %q: %w", name, err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidPayload{Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(name string, definition map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	// Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
