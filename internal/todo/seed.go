package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// DefaultSeed returns the list a fresh store starts with when no seed file
// is configured.
func DefaultSeed() []Todo {
	return []Todo{
		{Text: "Buy groceries"},
		{Text: "Walk the dog", Completed: true},
		{Text: "Read a book"},
	}
}

const seedSchemaURL = "hxtodo://seed.schema.json"

// seedSchema describes a seed file:
//
//	{"todos": [{"text": "Buy groceries", "completed": false}]}
const seedSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["todos"],
  "additionalProperties": false,
  "properties": {
    "todos": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["text"],
        "additionalProperties": false,
        "properties": {
          "text": {"type": "string", "pattern": "\\S"},
          "completed": {"type": "boolean"}
        }
      }
    }
  }
}`

// seedFile is the on-disk seed format.
type seedFile struct {
	Todos []struct {
		Text      string `json:"text"`
		Completed bool   `json:"completed"`
	} `json:"todos"`
}

// SeedError reports every schema violation found in a seed file.
type SeedError struct {
	Path       string
	Violations []string
}

func (e *SeedError) Error() string {
	return fmt.Sprintf("seed %s: %s", e.Path, strings.Join(e.Violations, "; "))
}

// LoadSeed reads and validates a seed file. An empty path yields DefaultSeed.
func LoadSeed(path string) ([]Todo, error) {
	if path == "" {
		return DefaultSeed(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return ParseSeed(path, data)
}

// ParseSeed validates data against the seed schema and converts it to todos.
// name is only used in error messages.
func ParseSeed(name string, data []byte) ([]Todo, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", name, err)
	}

	schema, err := compileSeedSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			serr := &SeedError{Path: name}
			collectViolations(serr, ve)
			return nil, serr
		}
		return nil, fmt.Errorf("validate seed %s: %w", name, err)
	}

	var f seedFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", name, err)
	}

	todos := make([]Todo, 0, len(f.Todos))
	for _, t := range f.Todos {
		todos = append(todos, Todo{
			Text:      strings.TrimSpace(t.Text),
			Completed: t.Completed,
		})
	}
	return todos, nil
}

func compileSeedSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(seedSchemaURL, strings.NewReader(seedSchema)); err != nil {
		return nil, fmt.Errorf("add seed schema: %w", err)
	}
	schema, err := compiler.Compile(seedSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile seed schema: %w", err)
	}
	return schema, nil
}

// collectViolations flattens the leaf causes of a validation error.
func collectViolations(serr *SeedError, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		serr.Violations = append(serr.Violations, loc+": "+ve.Message)
		return
	}
	for _, c := range ve.Causes {
		collectViolations(serr, c)
	}
}
