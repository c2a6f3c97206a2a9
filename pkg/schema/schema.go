// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schema converts untyped command-line tokens into typed values,
// driven by a JSON-Schema-shaped type descriptor. It owns all type-conversion
// policy and the error messages produced on mismatch.
package schema

import "encoding/json"

// Schema is a structural description of an expected value's shape. Trees are
// small and built once at registration time; cyclic schemas are not guarded
// against.
type Schema struct {
	// Type holds the declared type, or several for a union. Empty means
	// unspecified, in which case the shape is inferred from Properties/Items.
	Type []string
	// Enum restricts the value to one of the listed literals.
	Enum []any
	// Const restricts the value to a single literal; HasConst distinguishes
	// an explicit null from an absent const.
	Const    any
	HasConst bool
	// Items describes the element shape of an array.
	Items *Schema
	// Properties and AdditionalProperties describe object shapes. They are
	// used for type inference only; property-level validation is not part of
	// coercion.
	Properties           map[string]*Schema
	AdditionalProperties *Schema
	HasAdditional        bool
	// AnyOf and OneOf are tried in declared order, first success wins.
	AnyOf []*Schema
	OneOf []*Schema
	// AllOf coerces with the first member only; the remaining members are
	// not additionally enforced.
	AllOf []*Schema

	Description string
	Default     any
	Deprecated  bool
}

// HasDefault reports whether the schema carries a usable default.
func (s *Schema) HasDefault() bool {
	return s != nil && s.Default != nil
}

type rawSchema struct {
	Type                 json.RawMessage       `json:"type"`
	Enum                 []any                 `json:"enum"`
	Const                json.RawMessage       `json:"const"`
	Items                *rawSchema            `json:"items"`
	Properties           map[string]*rawSchema `json:"properties"`
	AdditionalProperties json.RawMessage       `json:"additionalProperties"`
	AnyOf                []*rawSchema          `json:"anyOf"`
	OneOf                []*rawSchema          `json:"oneOf"`
	AllOf                []*rawSchema          `json:"allOf"`
	Description          string                `json:"description"`
	Default              any                   `json:"default"`
	Deprecated           bool                  `json:"deprecated"`
}

// FromJSON parses a JSON-Schema document into a Schema. Only the subset the
// coercion engine understands is retained.
func FromJSON(data []byte) (*Schema, error) {
	var raw rawSchema
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw.schema()
}

func (r *rawSchema) schema() (*Schema, error) {
	if r == nil {
		return nil, nil
	}
	s := &Schema{
		Enum:        r.Enum,
		Description: r.Description,
		Default:     r.Default,
		Deprecated:  r.Deprecated,
	}

	// "type" is a string or an array of strings.
	if len(r.Type) > 0 {
		var single string
		if err := json.Unmarshal(r.Type, &single); err == nil {
			s.Type = []string{single}
		} else {
			var many []string
			if err := json.Unmarshal(r.Type, &many); err != nil {
				return nil, err
			}
			s.Type = many
		}
	}

	// A present "const" key matters even when its value is null.
	if len(r.Const) > 0 {
		s.HasConst = true
		if err := json.Unmarshal(r.Const, &s.Const); err != nil {
			return nil, err
		}
	}

	var err error
	if s.Items, err = r.Items.schema(); err != nil {
		return nil, err
	}
	if r.Properties != nil {
		s.Properties = make(map[string]*Schema, len(r.Properties))
		for name, prop := range r.Properties {
			if s.Properties[name], err = prop.schema(); err != nil {
				return nil, err
			}
		}
	}
	if len(r.AdditionalProperties) > 0 {
		s.HasAdditional = true
		var sub rawSchema
		if err := json.Unmarshal(r.AdditionalProperties, &sub); err == nil {
			if s.AdditionalProperties, err = sub.schema(); err != nil {
				return nil, err
			}
		}
	}
	if s.AnyOf, err = subSchemas(r.AnyOf); err != nil {
		return nil, err
	}
	if s.OneOf, err = subSchemas(r.OneOf); err != nil {
		return nil, err
	}
	if s.AllOf, err = subSchemas(r.AllOf); err != nil {
		return nil, err
	}
	return s, nil
}

func subSchemas(raws []*rawSchema) ([]*Schema, error) {
	if raws == nil {
		return nil, nil
	}
	out := make([]*Schema, len(raws))
	for i, raw := range raws {
		var err error
		if out[i], err = raw.schema(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Dialect targets tried by Extract, in order. Converters that do not speak
// the first dialect get a second chance with the older one.
const (
	TargetDraft2020 = "draft-2020-12"
	TargetDraft7    = "draft-07"
)

// Descriptor is implemented by values that can describe themselves as a
// Schema for a given target dialect. This is the plug-in point for
// third-party validation libraries: anything that can render a
// JSON-Schema-shaped description participates, with no compile-time
// dependency in either direction.
type Descriptor interface {
	JSONSchema(target string) (*Schema, error)
}

// IsDescriptor reports whether v can supply a Schema, either because it is
// one or because it implements Descriptor. All duck-type checks funnel
// through this predicate.
func IsDescriptor(v any) bool {
	switch d := v.(type) {
	case *Schema:
		return d != nil
	case Schema:
		return true
	case Descriptor:
		return d != nil
	}
	return false
}

// Extract resolves v into a Schema. Converter failures (error or panic) on
// the preferred dialect fall back to the older target before giving up.
func Extract(v any) (*Schema, bool) {
	switch d := v.(type) {
	case *Schema:
		return d, d != nil
	case Schema:
		return &d, true
	case Descriptor:
		for _, target := range []string{TargetDraft2020, TargetDraft7} {
			if s, ok := convert(d, target); ok {
				return s, true
			}
		}
	}
	return nil, false
}

func convert(d Descriptor, target string) (s *Schema, ok bool) {
	defer func() {
		if recover() != nil {
			s, ok = nil, false
		}
	}()
	s, err := d.JSONSchema(target)
	if err != nil || s == nil {
		return nil, false
	}
	return s, true
}
