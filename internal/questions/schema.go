package questions

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const bankSchemaURL = "schema://question-bank.json"

// bankSchema describes one question file: a non-empty array of questions.
// Choice questions need options and an answer; blanks need an answer.
var bankSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type":     "object",
		"required": []any{"id", "type", "question"},
		"properties": map[string]any{
			"id":            map[string]any{"type": "integer", "minimum": 1},
			"type":          map[string]any{"enum": []any{"mcq", "illustratedMCQ", "fillInTheBlank", "answerYourself"}},
			"question":      map[string]any{"type": "string", "minLength": 1},
			"image":         map[string]any{"type": "string"},
			"correctAnswer": map[string]any{"type": "string", "minLength": 1},
			"placeholder":   map[string]any{"type": "string"},
			"gradingNotes":  map[string]any{"type": "string"},
			"options": map[string]any{
				"type":     "array",
				"minItems": 2,
				"items": map[string]any{
					"type":     "object",
					"required": []any{"id", "label"},
					"properties": map[string]any{
						"id":      map[string]any{"type": "string", "minLength": 1},
						"label":   map[string]any{"type": "string"},
						"image":   map[string]any{"type": "string"},
						"correct": map[string]any{"type": "boolean"},
					},
				},
			},
		},
		"allOf": []any{
			map[string]any{
				"if": map[string]any{
					"properties": map[string]any{"type": map[string]any{"enum": []any{"mcq", "illustratedMCQ"}}},
				},
				"then": map[string]any{"required": []any{"options", "correctAnswer"}},
			},
			map[string]any{
				"if": map[string]any{
					"properties": map[string]any{"type": map[string]any{"const": "fillInTheBlank"}},
				},
				"then": map[string]any{"required": []any{"correctAnswer"}},
			},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledBankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, so round-trip the
		// literal to get float64 numbers.
		b, err := json.Marshal(bankSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(b, &doc); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(bankSchemaURL)
	})
	return compiled, compileErr
}

// validateBank checks raw against the question file schema.
func validateBank(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := compiledBankSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
