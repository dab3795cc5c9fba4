package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildResumeSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing the parser output. It is used locally to
// validate a parsed resume before anything is written to the sheet.
func BuildResumeSchema() map[string]any {
	confidence := map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0}
	stringList := map[string]any{"type": "array", "items": map[string]any{"type": "string"}}

	fieldOf := func(valueType map[string]any) map[string]any {
		return map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"value":      valueType,
				"confidence": confidence,
			},
			"required": []string{"value", "confidence"},
		}
	}

	props := map[string]any{
		"name":               fieldOf(map[string]any{"type": "string"}),
		"emails":             fieldOf(stringList),
		"locations":          fieldOf(stringList),
		"education":          fieldOf(stringList),
		"skills":             fieldOf(stringList),
		"work_experience":    fieldOf(stringList),
		"project_experience": fieldOf(stringList),
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required": []string{
			"name", "emails", "locations", "education",
			"skills", "work_experience", "project_experience",
		},
	}
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func resumeSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		raw, err := json.Marshal(BuildResumeSchema())
		if err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = jsonschema.CompileString("resume.schema.json", string(raw))
	})
	return compiledSchema, schemaErr
}

// ValidateResume checks a parsed resume against the output schema.
func ValidateResume(r Resume) error {
	sch, err := resumeSchema()
	if err != nil {
		return fmt.Errorf("compile resume schema: %w", err)
	}

	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal resume: %w", err)
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode resume: %w", err)
	}

	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("resume output invalid: %w", err)
	}
	return nil
}
