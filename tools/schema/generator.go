/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package schema derives tool input schemas from Go argument structs.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Generator wraps jsonschema.Reflector with the settings tool servers expect:
// a single inline object schema with closed properties.
type Generator struct {
	reflector jsonschema.Reflector
}

// NewGenerator constructs a Generator. Required properties come from
// `jsonschema:"required"` tags.
func NewGenerator() *Generator {
	return &Generator{
		reflector: jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			ExpandedStruct:             true,
			AllowAdditionalProperties:  false,
			DoNotReference:             true,
		},
	}
}

// Reflect returns the schema for v with the meta-schema and id stripped,
// leaving a plain object schema.
func (g *Generator) Reflect(v any) *jsonschema.Schema {
	s := g.reflector.Reflect(v)
	s.Version = ""
	s.ID = ""
	return s
}

// InputSchema returns the encoded input schema for the argument struct T.
func InputSchema[T any]() (json.RawMessage, error) {
	var zero T
	b, err := json.Marshal(NewGenerator().Reflect(&zero))
	if err != nil {
		return nil, fmt.Errorf("marshaling schema for %T: %w", zero, err)
	}
	return b, nil
}
