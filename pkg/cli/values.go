// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import "strings"

// Options is the assembled option map for one invocation. Dot-named options
// expand into nested maps, so "--env.key v" lands at Options["env"]["key"].
type Options map[string]any

// Get traverses a dot path and returns the value at it.
func (o Options) Get(path string) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = map[string]any(o)
	for _, part := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Has reports whether the path resolved to any value.
func (o Options) Has(path string) bool {
	_, ok := o.Get(path)
	return ok
}

// String returns the string at path, or "".
func (o Options) String(path string) string {
	if v, ok := o.Get(path); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Bool returns the bool at path, or false.
func (o Options) Bool(path string) bool {
	if v, ok := o.Get(path); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Float returns the number at path, or 0.
func (o Options) Float(path string) float64 {
	switch v, _ := o.Get(path); n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

// Int returns the integer at path, or 0. Numbers with a fractional part
// truncate.
func (o Options) Int(path string) int64 {
	switch v, _ := o.Get(path); n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

// Strings returns the string elements at path. Non-string elements are
// skipped.
func (o Options) Strings(path string) []string {
	v, ok := o.Get(path)
	if !ok {
		return nil
	}
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, e := range vals {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// setPath writes v at a dot path, creating nested maps as needed.
func setPath(o Options, path string, v any) {
	parts := strings.Split(path, ".")
	cur := map[string]any(o)
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = v
}
