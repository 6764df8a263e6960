// Package jsonschema exports configuration defs as JSON Schema documents so
// editors and other tooling can validate the key/value view of a file.
package jsonschema

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	mkconfgen "github.com/zirkelkoenig/MKConfGen"
	"github.com/zirkelkoenig/MKConfGen/internal/ir"
	"github.com/zirkelkoenig/MKConfGen/internal/record"
)

// Draft is the dialect declared by exported documents.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	Schema      string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Core
	Type    string `json:"type,omitempty"`
	Default any    `json:"default,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty"`

	// String
	MaxLength *int `json:"maxLength,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// non-standard: declaration order and validator binding
	Order    int    `json:"x-order"`
	Validate string `json:"x-validate,omitempty"`
}

// FromDef projects d onto a JSON Schema object. Symbolic capacities and
// defaults resolve through consts.
func FromDef(d *ir.Def, consts map[string]int64) (*Schema, error) {
	rec, err := record.New(d, record.Options{Consts: consts})
	if err != nil {
		return nil, fmt.Errorf("jsonschema: %w", err)
	}
	s := &Schema{
		Schema:     Draft,
		Title:      d.Name,
		Type:       "object",
		Properties: make(map[string]*Schema, len(d.Items)),
		// unknown keys are ignored by the loader
		AdditionalProperties: true,
	}
	for i, it := range d.Items {
		p := &Schema{Order: i, Validate: it.Validate}
		if hs := d.HeadingsAt(i); len(hs) > 0 {
			p.Description = strings.Join(hs, "; ")
		}
		p.Default, _ = rec.Value(it.Name)
		switch f := rec.Fields[i].(type) {
		case *mkconfgen.IntField:
			p.Type = "integer"
		case *mkconfgen.UintField:
			p.Type = "integer"
			zero := 0.0
			p.Minimum = &zero
		case *mkconfgen.FloatField:
			p.Type = "number"
		case *mkconfgen.WStrField:
			p.Type = "string"
			n := f.Capacity - 1
			p.MaxLength = &n
		}
		s.Properties[it.Name] = p
	}
	return s, nil
}

// Marshal renders s as indented JSON.
func Marshal(s *Schema) ([]byte, error) {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("jsonschema: marshal: %w", err)
	}
	return append(out, '\n'), nil
}
