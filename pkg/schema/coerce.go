// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CoerceError is returned when a value cannot be converted to the shape a
// schema requires. The message is the signaling mechanism: it names the
// option and the offending raw value and is stable enough to match in tests.
type CoerceError struct {
	Option string
	Value  any
	Detail string
}

func (e *CoerceError) Error() string {
	if e.Option != "" {
		return fmt.Sprintf("invalid value for option %s: %s", e.Option, e.Detail)
	}
	return e.Detail
}

// RepeatRejectedError is returned when a repeated flag feeds a schema whose
// type does not opt in to multiple values with an array type.
type RepeatRejectedError struct {
	Option string
	Count  int
}

func (e *RepeatRejectedError) Error() string {
	return fmt.Sprintf("option %s does not accept multiple values (given %d times)", e.Option, e.Count)
}

// Coerce converts a raw flag value (string, bool sentinel, or accumulated
// []string from a repeated flag) into the typed value the schema describes.
// label names the option in error messages, e.g. "--port".
func Coerce(value any, s *Schema, label string) (any, error) {
	if s == nil {
		return value, nil
	}

	// Repeated flags require an array-typed schema (directly, or as a
	// union/anyOf/oneOf member) to opt in.
	if vals, ok := value.([]string); ok {
		variant := arrayVariant(s)
		if variant == nil {
			return nil, &RepeatRejectedError{Option: label, Count: len(vals)}
		}
		out := make([]any, len(vals))
		for i, raw := range vals {
			v, err := coerceItem(raw, variant.Items, label)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	return coerceSingle(value, s, label)
}

// coerceSingle handles string and bool inputs through the fixed decision
// order: array-typed schema, enum, const, anyOf/oneOf, allOf, explicit type,
// inferred type, passthrough.
func coerceSingle(value any, s *Schema, label string) (any, error) {
	if typeListContains(s.Type, "array") {
		return singleToArray(value, s.Items, label)
	}
	if len(s.Enum) > 0 {
		return coerceEnum(value, s.Enum, label)
	}
	if s.HasConst {
		return coerceConst(value, s.Const, label)
	}
	if len(s.AnyOf) > 0 {
		return coerceVariants(value, s.AnyOf, label)
	}
	if len(s.OneOf) > 0 {
		return coerceVariants(value, s.OneOf, label)
	}
	// allOf coerces with the first member only; the remaining members are
	// not additionally validated.
	if len(s.AllOf) > 0 {
		return Coerce(value, s.AllOf[0], label)
	}
	switch len(s.Type) {
	case 1:
		return coerceType(value, s.Type[0], s, label)
	default:
		if len(s.Type) > 1 {
			return coerceTypeUnion(value, s.Type, s, label)
		}
	}
	// No explicit type: infer from shape keywords, else pass through.
	if s.Properties != nil || s.HasAdditional {
		return coerceType(value, "object", s, label)
	}
	if s.Items != nil {
		return singleToArray(value, s.Items, label)
	}
	return value, nil
}

// arrayVariant returns the schema whose Items govern a repeated flag, or nil
// when the schema does not accept arrays at all.
func arrayVariant(s *Schema) *Schema {
	if acceptsArray(s) {
		return s
	}
	for _, group := range [][]*Schema{s.AnyOf, s.OneOf} {
		for _, sub := range group {
			if sub != nil && acceptsArray(sub) {
				return sub
			}
		}
	}
	return nil
}

func acceptsArray(s *Schema) bool {
	if typeListContains(s.Type, "array") {
		return true
	}
	return len(s.Type) == 0 && s.Items != nil && s.Properties == nil && !s.HasAdditional
}

func typeListContains(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

// singleToArray converts one raw value against an array-typed schema. A value
// that parses as a JSON array is used element-wise; anything else is wrapped
// into a one-element array.
func singleToArray(value any, items *Schema, label string) (any, error) {
	if str, ok := value.(string); ok {
		var parsed any
		if err := json.Unmarshal([]byte(str), &parsed); err == nil {
			if arr, ok := parsed.([]any); ok {
				out := make([]any, len(arr))
				for i, elem := range arr {
					switch elem.(type) {
					case string, bool:
						v, err := coerceItem(elem, items, label)
						if err != nil {
							return nil, err
						}
						out[i] = v
					default:
						// Already-typed JSON values pass through unchanged.
						out[i] = elem
					}
				}
				return out, nil
			}
		}
	}
	v, err := coerceItem(value, items, label)
	if err != nil {
		return nil, err
	}
	return []any{v}, nil
}

func coerceItem(value any, items *Schema, label string) (any, error) {
	if items == nil {
		return value, nil
	}
	return Coerce(value, items, label)
}

// coerceEnum matches the value against each allowed literal in declared
// order: numeric equality, then boolean string forms, then strict string
// equality. First match wins.
func coerceEnum(value any, allowed []any, label string) (any, error) {
	for _, lit := range allowed {
		if v, ok := matchLiteral(value, lit); ok {
			return v, nil
		}
	}
	return nil, &CoerceError{
		Option: label,
		Value:  value,
		Detail: fmt.Sprintf("expected one of %s, got %s", formatLiterals(allowed), formatValue(value)),
	}
}

func matchLiteral(value, lit any) (any, bool) {
	if num, ok := literalNumber(lit); ok {
		switch v := value.(type) {
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil && v != "" && f == num {
				return num, true
			}
		case bool:
			f := 0.0
			if v {
				f = 1.0
			}
			if f == num {
				return num, true
			}
		}
		return nil, false
	}
	if b, ok := lit.(bool); ok {
		switch v := value.(type) {
		case string:
			if (v == "true" && b) || (v == "false" && !b) {
				return b, true
			}
		case bool:
			if v == b {
				return b, true
			}
		}
		return nil, false
	}
	if lit == nil {
		if v, ok := value.(string); ok && v == "" {
			return nil, true
		}
		return nil, false
	}
	if str, ok := lit.(string); ok {
		switch v := value.(type) {
		case string:
			if v == str {
				return str, true
			}
		case bool:
			if (v && str == "true") || (!v && str == "false") {
				return str, true
			}
		}
	}
	return nil, false
}

// coerceConst converts the value to the const's own runtime type and requires
// exact equality. Null is handled before the type dispatch because its
// runtime type name is not "null".
func coerceConst(value, lit any, label string) (any, error) {
	fail := func() error {
		return &CoerceError{
			Option: label,
			Value:  value,
			Detail: fmt.Sprintf("expected %s, got %s", formatLiteral(lit), formatValue(value)),
		}
	}
	if lit == nil {
		if v, ok := value.(string); ok && v == "" {
			return nil, nil
		}
		return nil, fail()
	}
	if num, ok := literalNumber(lit); ok {
		v, err := coerceNumber(value, label)
		if err != nil || v != num {
			return nil, fail()
		}
		return num, nil
	}
	var typ string
	switch lit.(type) {
	case string:
		typ = "string"
	case bool:
		typ = "boolean"
	default:
		return nil, fail()
	}
	v, err := coerceType(value, typ, nil, label)
	if err != nil || v != lit {
		return nil, fail()
	}
	return lit, nil
}

// coerceVariants tries each sub-schema in declared order and returns the
// first that coerces without error.
func coerceVariants(value any, variants []*Schema, label string) (any, error) {
	for _, sub := range variants {
		if v, err := Coerce(value, sub, label); err == nil {
			return v, nil
		}
	}
	return nil, &CoerceError{
		Option: label,
		Value:  value,
		Detail: fmt.Sprintf("got %s, which matches none of the allowed variants", formatValue(value)),
	}
}

// coerceTypeUnion tries each member type in declared order, first success
// wins.
func coerceTypeUnion(value any, types []string, s *Schema, label string) (any, error) {
	for _, typ := range types {
		if v, err := coerceType(value, typ, s, label); err == nil {
			return v, nil
		}
	}
	return nil, &CoerceError{
		Option: label,
		Value:  value,
		Detail: fmt.Sprintf("expected %s, got %s", strings.Join(types, "|"), formatValue(value)),
	}
}

func coerceType(value any, typ string, s *Schema, label string) (any, error) {
	fail := func(detail string) (any, error) {
		return nil, &CoerceError{Option: label, Value: value, Detail: detail}
	}

	switch typ {
	case "string":
		switch v := value.(type) {
		case string:
			return v, nil
		case bool:
			if v {
				return "true", nil
			}
			return "false", nil
		}
		return fail(fmt.Sprintf("expected string, got %s", formatValue(value)))

	case "number":
		return coerceNumber(value, label)

	case "integer":
		f, err := coerceNumber(value, label)
		if err != nil {
			return fail(fmt.Sprintf("expected integer, got %s", formatValue(value)))
		}
		if f != math.Trunc(f) {
			return fail(fmt.Sprintf("expected integer, got %s", formatValue(value)))
		}
		return int64(f), nil

	case "boolean":
		switch v := value.(type) {
		case string:
			switch v {
			case "true":
				return true, nil
			case "false":
				return false, nil
			}
		case bool:
			return v, nil
		}
		return fail(fmt.Sprintf("expected boolean, got %s", formatValue(value)))

	case "null":
		// Only the empty string coerces to null; bool false does not.
		if v, ok := value.(string); ok && v == "" {
			return nil, nil
		}
		return fail(fmt.Sprintf("expected null, got %s", formatValue(value)))

	case "object":
		str, ok := value.(string)
		if !ok {
			return fail(fmt.Sprintf("expected object, got %s", formatValue(value)))
		}
		var parsed any
		if err := json.Unmarshal([]byte(str), &parsed); err != nil {
			return fail(fmt.Sprintf("expected object, got %s", formatValue(value)))
		}
		obj, ok := parsed.(map[string]any)
		if !ok {
			return fail(fmt.Sprintf("expected object, got %s", formatValue(value)))
		}
		return obj, nil

	case "array":
		str, ok := value.(string)
		if !ok {
			return fail(fmt.Sprintf("expected array, got %s", formatValue(value)))
		}
		var parsed any
		if err := json.Unmarshal([]byte(str), &parsed); err != nil {
			return fail(fmt.Sprintf("expected array, got %s", formatValue(value)))
		}
		arr, ok := parsed.([]any)
		if !ok {
			return fail(fmt.Sprintf("expected array, got %s", formatValue(value)))
		}
		var items *Schema
		if s != nil {
			items = s.Items
		}
		out := make([]any, len(arr))
		for i, elem := range arr {
			switch elem.(type) {
			case string, bool:
				v, err := coerceItem(elem, items, label)
				if err != nil {
					return nil, err
				}
				out[i] = v
			default:
				out[i] = elem
			}
		}
		return out, nil
	}

	return fail(fmt.Sprintf("cannot coerce to unknown type %q", typ))
}

// coerceNumber converts to float64. The empty string is a hard failure, not
// zero, and non-finite results are rejected.
func coerceNumber(value any, label string) (float64, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		if v == "" {
			return 0, &CoerceError{Option: label, Value: value, Detail: `expected number, got ""`}
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, &CoerceError{
				Option: label,
				Value:  value,
				Detail: fmt.Sprintf("expected number, got %s", formatValue(value)),
			}
		}
		return f, nil
	}
	return 0, &CoerceError{
		Option: label,
		Value:  value,
		Detail: fmt.Sprintf("expected number, got %s", formatValue(value)),
	}
}

func literalNumber(lit any) (float64, bool) {
	switch n := lit.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatLiteral(lit any) string {
	switch v := lit.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatLiterals(lits []any) string {
	parts := make([]string, len(lits))
	for i, lit := range lits {
		parts[i] = formatLiteral(lit)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
