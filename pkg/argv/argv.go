// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argv splits a raw argument list into positional tokens and a flag
// map. It knows nothing about declared options beyond which flag names parse
// as strict booleans and how aliases map to canonical names; everything else
// (arity, typing, validation) belongs to higher layers.
package argv

import "strings"

// Rest is the reserved flag-map key holding every token that followed a bare
// "--" terminator, verbatim and in order.
const Rest = "--"

// Value is the raw value recorded for a flag: String when an explicit value
// was supplied, Bool when the flag stood alone (the presence sentinel) or was
// declared boolean, List when the flag repeated.
type Value interface{ isValue() }

// String is a single explicit flag value.
type String string

// Bool is a strict boolean flag value, or the presence sentinel for a
// value-taking flag supplied with no value.
type Bool bool

// List accumulates the values of a repeated flag in first-seen order.
// A flag seen exactly once never produces a one-element List.
type List []string

func (String) isValue() {}
func (Bool) isValue()   {}
func (List) isValue()   {}

// Options configures a single Parse call.
type Options struct {
	// Booleans holds canonical flag names that parse as strict booleans and
	// never consume the next token.
	Booleans map[string]bool
	// Aliases maps alternate flag spellings to their canonical name.
	// Canonicalization happens before the flag map is written, so every
	// spelling of a flag lands under one key.
	Aliases map[string]string
}

// Result is the output of one Parse call.
type Result struct {
	Positionals []string
	Flags       map[string]Value
}

// Parse tokenizes args. It is synchronous and deterministic: the same input
// pair always yields the same Result.
func Parse(args []string, opts Options) Result {
	res := Result{
		Positionals: []string{},
		Flags:       make(map[string]Value),
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "--" ends flag scanning; the remainder (further "--" included) is
		// collected verbatim into the reserved bucket.
		if arg == Rest {
			rest := List{}
			rest = append(rest, args[i+1:]...)
			res.Flags[Rest] = rest
			break
		}

		if !looksLikeFlag(arg) {
			res.Positionals = append(res.Positionals, arg)
			continue
		}

		name, explicit, hasExplicit := splitFlag(arg)
		if canonical, ok := opts.Aliases[name]; ok {
			name = canonical
		}

		if opts.Booleans[name] {
			v := Bool(true)
			if hasExplicit {
				if explicit == "false" {
					v = Bool(false)
				} else {
					// A non-"false" explicit value keeps the flag true; the
					// value itself is surfaced as a positional instead.
					res.Positionals = append(res.Positionals, explicit)
				}
			}
			record(res.Flags, name, v)
			continue
		}

		if hasExplicit {
			record(res.Flags, name, String(explicit))
			continue
		}

		// No "=": the next token is the value, unless it looks like a flag
		// or there is no next token, in which case the presence sentinel is
		// recorded.
		if i+1 < len(args) && !looksLikeFlag(args[i+1]) {
			record(res.Flags, name, String(args[i+1]))
			i++
			continue
		}
		record(res.Flags, name, Bool(true))
	}

	return res
}

// looksLikeFlag reports whether tok names a flag. A bare "-" is conventional
// stdin shorthand and stays positional.
func looksLikeFlag(tok string) bool {
	return len(tok) > 1 && strings.HasPrefix(tok, "-") && tok != Rest
}

// splitFlag strips one or two leading dashes and splits an explicit "=value"
// suffix off the flag name.
func splitFlag(tok string) (name, explicit string, hasExplicit bool) {
	name = strings.TrimPrefix(tok, "-")
	name = strings.TrimPrefix(name, "-")
	if idx := strings.Index(name, "="); idx != -1 {
		return name[:idx], name[idx+1:], true
	}
	return name, "", false
}

// record writes a flag value, accumulating repeats into a List in first-seen
// order.
func record(flags map[string]Value, name string, v Value) {
	prev, ok := flags[name]
	if !ok {
		flags[name] = v
		return
	}
	if list, ok := prev.(List); ok {
		flags[name] = append(list, flatten(v))
		return
	}
	flags[name] = List{flatten(prev), flatten(v)}
}

// flatten renders a single-occurrence value as the string form used inside a
// List. Sentinels become "true"/"false" so repeated boolean flags still
// accumulate.
func flatten(v Value) string {
	switch v := v.(type) {
	case String:
		return string(v)
	case Bool:
		if v {
			return "true"
		}
		return "false"
	}
	return ""
}
