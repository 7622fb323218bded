package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas caches compiled JSON schemas by name.
var compiledSchemas sync.Map // map[string]*jsonschema.Schema

// validateContent validates raw JSON against the given Schema. Returns
// nil when no schema is provided or validation passes, and a
// *BadResponseError on failure.
func validateContent(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &BadResponseError{
			Content: raw,
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	compiled, err := compileSchema(schema)
	if err != nil {
		return &BadResponseError{
			Content: raw,
			Err:     fmt.Errorf("compile schema %q: %w", schema.Name, err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &BadResponseError{
			Content: raw,
			Err:     fmt.Errorf("schema validation failed: %w", err),
		}
	}

	return nil
}

// compileSchema returns a cached compiled schema, compiling on first use.
func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a parsed JSON value, not a Go map with typed
	// values, so round-trip the definition through encoding/json.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	compiledSchemas.Store(schema.Name, compiled)
	return compiled, nil
}
