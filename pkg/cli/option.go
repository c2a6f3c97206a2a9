// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"strings"

	"github.com/remorses/goke/pkg/schema"
)

// Arity says how an option relates to values.
type Arity int

const (
	// ArityBoolean options never receive a value.
	ArityBoolean Arity = iota
	// ArityOptional options may receive a value or act as a bare switch.
	ArityOptional
	// ArityRequired options must receive a value.
	ArityRequired
)

// Option is one declared named parameter. Options are built once at
// registration time and never mutated afterwards.
type Option struct {
	raw    string
	names  []string // declaration order; the longest is canonical
	arity  Arity
	schema *schema.Schema
	desc   string

	def        any
	hasDefault bool
	deprecated bool
}

// newOption parses a raw declaration like "-t, --tag <tag>" or "--force".
// Bracket syntax selects the arity: <x> requires a value, [x] makes the value
// optional, a bare name is a boolean switch. desc is a human description
// string or a schema value (anything schema.IsDescriptor accepts), which also
// supplies description/default/deprecated metadata. Malformed declarations
// are programmer errors and panic.
func newOption(raw string, desc any) *Option {
	o := &Option{raw: raw, arity: ArityBoolean}

	for _, tok := range strings.Fields(raw) {
		switch {
		case strings.HasPrefix(tok, "<"):
			o.arity = ArityRequired
		case strings.HasPrefix(tok, "["):
			o.arity = ArityOptional
		case strings.HasPrefix(tok, "-"):
			name := strings.TrimSuffix(tok, ",")
			name = strings.TrimPrefix(name, "-")
			name = strings.TrimPrefix(name, "-")
			if name == "" {
				panic(fmt.Sprintf("cli: malformed option declaration %q", raw))
			}
			o.names = append(o.names, name)
		default:
			panic(fmt.Sprintf("cli: unexpected token %q in option declaration %q", tok, raw))
		}
	}
	if len(o.names) == 0 {
		panic(fmt.Sprintf("cli: option declaration %q names no flag", raw))
	}

	switch d := desc.(type) {
	case nil:
	case string:
		o.desc = d
	default:
		s, ok := schema.Extract(d)
		if !ok {
			panic(fmt.Sprintf("cli: option %q description is neither a string nor a schema", raw))
		}
		o.schema = s
		o.desc = s.Description
		o.deprecated = s.Deprecated
		if s.HasDefault() {
			o.def = s.Default
			o.hasDefault = true
		}
	}

	return o
}

// Name returns the canonical name: the longest declared alias.
func (o *Option) Name() string {
	name := o.names[0]
	for _, n := range o.names[1:] {
		if len(n) > len(name) {
			name = n
		}
	}
	return name
}

// Names returns every declared spelling in declaration order.
func (o *Option) Names() []string { return o.names }

// Schema returns the attached type descriptor, or nil.
func (o *Option) Schema() *schema.Schema { return o.schema }

// Arity returns the option's value arity.
func (o *Option) Arity() Arity { return o.arity }

// Description returns the human description, possibly extracted from the
// schema.
func (o *Option) Description() string { return o.desc }

// Default returns the value substituted when the option is absent entirely.
func (o *Option) Default() (any, bool) { return o.def, o.hasDefault }

// Deprecated reports whether the schema marked the option deprecated.
func (o *Option) Deprecated() bool { return o.deprecated }

// usage renders the declaration for help output, e.g. "-t, --tag <tag>".
func (o *Option) usage() string {
	parts := make([]string, len(o.names))
	for i, n := range o.names {
		parts[i] = formatFlagName(n)
	}
	decl := strings.Join(parts, ", ")
	switch o.arity {
	case ArityRequired:
		decl += " <value>"
	case ArityOptional:
		decl += " [value]"
	}
	return decl
}

// mergeOptionMaps collects tokenizer configuration (strict booleans and
// alias-to-canonical mappings) for a set of options.
func mergeOptionMaps(groups ...[]*Option) (booleans map[string]bool, aliases map[string]string) {
	booleans = make(map[string]bool)
	aliases = make(map[string]string)
	for _, opts := range groups {
		for _, o := range opts {
			canonical := o.Name()
			if o.arity == ArityBoolean {
				booleans[canonical] = true
			}
			for _, n := range o.names {
				if n != canonical {
					aliases[n] = canonical
				}
			}
		}
	}
	return booleans, aliases
}
